package docstore

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// System attribute names. They are reserved and never stored in Fields.
const (
	AttrID         = "$id"
	AttrCollection = "$collectionId"
	AttrCreatedAt  = "$createdAt"
	AttrUpdatedAt  = "$updatedAt"
)

// Document is a stored record. Fields holds JSON-compatible values only:
// strings, float64 numbers, bools, nil, []any and map[string]any.
type Document struct {
	ID         string
	Collection string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Fields     map[string]any
}

// String returns the named field when it is a string.
func (d *Document) String(field string) string {
	if d == nil || d.Fields == nil {
		return ""
	}
	s, _ := d.Fields[field].(string)
	return s
}

// MarshalJSON flattens the document: system attributes are prefixed with
// "$" and sit next to the caller-defined fields.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+4)
	for k, v := range d.Fields {
		out[k] = v
	}
	out[AttrID] = d.ID
	if d.Collection != "" {
		out[AttrCollection] = d.Collection
	}
	if !d.CreatedAt.IsZero() {
		out[AttrCreatedAt] = d.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if !d.UpdatedAt.IsZero() {
		out[AttrUpdatedAt] = d.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(out)
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*d = Document{Fields: make(map[string]any, len(raw))}
	for k, v := range raw {
		switch k {
		case AttrID:
			d.ID, _ = v.(string)
		case AttrCollection:
			d.Collection, _ = v.(string)
		case AttrCreatedAt, AttrUpdatedAt:
			s, _ := v.(string)
			if s == "" {
				continue
			}
			ts, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return fmt.Errorf("parse %s: %w", k, err)
			}
			if k == AttrCreatedAt {
				d.CreatedAt = ts
			} else {
				d.UpdatedAt = ts
			}
		default:
			if strings.HasPrefix(k, "$") {
				continue
			}
			d.Fields[k] = v
		}
	}
	return nil
}

// Project keeps only the named fields. System attributes always survive.
// An empty list keeps everything.
func (d *Document) Project(fields []string) *Document {
	if len(fields) == 0 {
		return d
	}
	out := *d
	out.Fields = make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := d.Fields[f]; ok {
			out.Fields[f] = v
		}
	}
	return &out
}
