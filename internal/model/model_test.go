package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var lookup = Endpoint{
	Name: "Character Lookup",
	Path: "/v1/lookup/character/",
	Fields: []Field{
		{Key: "name", In: ParamInQuery, Mode: SearchByName},
		{Key: "oid", In: ParamInQuery, Mode: SearchByID},
	},
}

func TestParamsForUsesSearchMode(t *testing.T) {
	vals := map[string]string{"name": "Han", "oid": "42"}

	assert.Equal(t, Params{"name": "Han"}, ParamsFor(lookup, SearchByName, vals))
	assert.Equal(t, Params{"oid": "42"}, ParamsFor(lookup, SearchByID, vals))
	// unset mode falls back to by-name
	assert.Equal(t, Params{"name": "Han"}, ParamsFor(lookup, SearchAny, vals))
}

func TestParamsForSkipsBlankValues(t *testing.T) {
	ep := Endpoint{Fields: []Field{{Key: "oid", In: ParamInPath, Required: true}}}
	assert.Empty(t, ParamsFor(ep, SearchAny, map[string]string{"oid": ""}))
	assert.Equal(t, Params{"oid": " 7 "}, ParamsFor(ep, SearchAny, map[string]string{"oid": " 7 "}))
}

func TestRequestIntentCopiesValues(t *testing.T) {
	vals := map[string]string{"name": "Leia"}
	ri := NewRequestIntent(lookup, DefaultConnection(), SearchByName, vals)
	vals["name"] = "Vader"

	assert.Equal(t, Params{"name": "Leia"}, ri.Params())
}

func TestParseSearchMode(t *testing.T) {
	tests := []struct {
		in   string
		want SearchMode
		ok   bool
	}{
		{"", SearchByName, true},
		{"name", SearchByName, true},
		{"ID", SearchByID, true},
		{"by-id", SearchByID, true},
		{"guild", SearchAny, false},
	}
	for _, tt := range tests {
		got, ok := ParseSearchMode(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestDefaultConnection(t *testing.T) {
	c := DefaultConnection()
	assert.Equal(t, "https://localhost:44443", c.BaseURL())
	assert.True(t, c.Insecure)
	assert.Equal(t, DefaultTimeout, c.Timeout)
}
