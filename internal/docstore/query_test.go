package docstore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_Constructors(t *testing.T) {
	assert.Equal(t, Query{Method: "equal", Attribute: "votedById", Values: []any{"u1"}}, Equal("votedById", "u1"))
	assert.Equal(t, Query{Method: "orderDesc", Attribute: "$createdAt"}, OrderDesc(AttrCreatedAt))
	assert.Equal(t, Query{Method: "orderAsc", Attribute: "title"}, OrderAsc("title"))
	assert.Equal(t, Query{Method: "offset", Values: []any{25}}, Offset(25))
	assert.Equal(t, Query{Method: "limit", Values: []any{25}}, Limit(25))
	assert.Equal(t, Query{Method: "select", Values: []any{"title", "questionId"}}, Select("title", "questionId"))
}

func TestQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       Query
		wantErr bool
	}{
		{"equal ok", Equal("voteStatus", "upvoted"), false},
		{"equal system attr", Equal(AttrID, "x"), false},
		{"equal no values", Equal("voteStatus"), true},
		{"equal injection", Equal("a'; drop table documents; --", "x"), true},
		{"order ok", OrderDesc(AttrCreatedAt), false},
		{"order unknown system attr", OrderDesc("$secret"), true},
		{"offset ok", Offset(0), false},
		{"offset negative", Offset(-1), true},
		{"limit from json float", Query{Method: MethodLimit, Values: []any{float64(25)}}, false},
		{"limit fractional", Query{Method: MethodLimit, Values: []any{2.5}}, true},
		{"limit missing", Query{Method: MethodLimit}, true},
		{"select ok", Select("title"), false},
		{"select bad", Query{Method: MethodSelect, Values: []any{3}}, true},
		{"unknown", Query{Method: "search", Attribute: "title"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuery_JSONRoundTripKeepsIntArguments(t *testing.T) {
	b, err := json.Marshal([]Query{Offset(50), Equal("voteStatus", "downvoted")})
	require.NoError(t, err)

	var got []Query
	require.NoError(t, json.Unmarshal(b, &got))

	n, ok := got[0].Int()
	require.True(t, ok)
	assert.Equal(t, 50, n)
	assert.Equal(t, []any{"downvoted"}, got[1].Values)
}

func TestSelectedFields(t *testing.T) {
	qs := []Query{Select("title"), Equal("x", 1), Select("questionId")}
	assert.Equal(t, []string{"title", "questionId"}, SelectedFields(qs))
	assert.Nil(t, SelectedFields([]Query{Limit(1)}))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "5", FormatValue(5.0))
	assert.Equal(t, "2.5", FormatValue(2.5))
	assert.Equal(t, "7", FormatValue(7))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "abc", FormatValue("abc"))
	assert.Equal(t, "", FormatValue(nil))
}
