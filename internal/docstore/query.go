package docstore

import (
	"fmt"
	"regexp"
	"strconv"
)

// Method names of the query language.
const (
	MethodEqual     = "equal"
	MethodOrderAsc  = "orderAsc"
	MethodOrderDesc = "orderDesc"
	MethodOffset    = "offset"
	MethodLimit     = "limit"
	MethodSelect    = "select"
)

// Query is one predicate of a List or Get call. Queries travel over the
// wire as JSON objects, so Values only ever holds JSON-compatible values.
type Query struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

// Equal matches documents whose attribute equals any of values.
func Equal(attribute string, values ...any) Query {
	return Query{Method: MethodEqual, Attribute: attribute, Values: values}
}

func OrderAsc(attribute string) Query {
	return Query{Method: MethodOrderAsc, Attribute: attribute}
}

func OrderDesc(attribute string) Query {
	return Query{Method: MethodOrderDesc, Attribute: attribute}
}

func Offset(n int) Query {
	return Query{Method: MethodOffset, Values: []any{n}}
}

func Limit(n int) Query {
	return Query{Method: MethodLimit, Values: []any{n}}
}

// Select restricts the returned fields.
func Select(fields ...string) Query {
	values := make([]any, len(fields))
	for i, f := range fields {
		values[i] = f
	}
	return Query{Method: MethodSelect, Values: values}
}

var attributePattern = regexp.MustCompile(`^(\$id|\$createdAt|\$updatedAt|[A-Za-z_][A-Za-z0-9_]{0,63})$`)

// Validate checks the query shape. Stores call it before compiling queries.
func (q Query) Validate() error {
	switch q.Method {
	case MethodEqual:
		if !attributePattern.MatchString(q.Attribute) {
			return fmt.Errorf("invalid attribute %q", q.Attribute)
		}
		if len(q.Values) == 0 {
			return fmt.Errorf("equal(%s): no values", q.Attribute)
		}
	case MethodOrderAsc, MethodOrderDesc:
		if !attributePattern.MatchString(q.Attribute) {
			return fmt.Errorf("invalid attribute %q", q.Attribute)
		}
	case MethodOffset, MethodLimit:
		n, ok := q.Int()
		if !ok || n < 0 {
			return fmt.Errorf("%s: expected one non-negative integer", q.Method)
		}
	case MethodSelect:
		for _, v := range q.Values {
			s, ok := v.(string)
			if !ok || !attributePattern.MatchString(s) {
				return fmt.Errorf("select: invalid field %v", v)
			}
		}
	default:
		return fmt.Errorf("unknown query method %q", q.Method)
	}
	return nil
}

// Int returns the single integer argument of Offset and Limit queries.
// Values decoded from JSON arrive as float64.
func (q Query) Int() (int, bool) {
	if len(q.Values) != 1 {
		return 0, false
	}
	switch v := q.Values[0].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// SelectedFields collects the fields named by every Select query.
func SelectedFields(queries []Query) []string {
	var fields []string
	for _, q := range queries {
		if q.Method != MethodSelect {
			continue
		}
		for _, v := range q.Values {
			if s, ok := v.(string); ok {
				fields = append(fields, s)
			}
		}
	}
	return fields
}

// FormatValue renders a scalar the way it is compared against stored JSON
// text, e.g. 5.0 becomes "5".
func FormatValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(value)
	}
}
