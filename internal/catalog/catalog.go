// Package catalog holds the fixed set of Core3 REST endpoints.
package catalog

import (
	"net/http"
	"strings"

	"swgapi/internal/model"
)

const OIDPlaceholder = "{oid}"

var endpoints = []model.Endpoint{
	{
		Name:        "Version",
		Method:      http.MethodGet,
		Path:        "/v1/version/",
		Description: "Get API and Core3 version information",
	},
	{
		Name:        "Object Info",
		Method:      http.MethodGet,
		Path:        "/v1/object/" + OIDPlaceholder + "/",
		Description: "Get information about a specific object",
		Fields: []model.Field{
			{Key: "oid", Label: "Object ID", Required: true, In: model.ParamInPath},
		},
	},
	{
		Name:        "Config",
		Method:      http.MethodGet,
		Path:        "/v1/admin/config/",
		Description: "Get server configuration",
	},
	{
		Name:        "Stats",
		Method:      http.MethodGet,
		Path:        "/v1/admin/stats/",
		Description: "Get server statistics",
	},
	{
		Name:        "Character Lookup",
		Method:      http.MethodGet,
		Path:        "/v1/lookup/character/",
		Description: "Look up character information",
		Fields: []model.Field{
			{Key: "name", Label: "Character Name", In: model.ParamInQuery, Mode: model.SearchByName},
			{Key: "oid", Label: "Character Object ID", In: model.ParamInQuery, Mode: model.SearchByID},
		},
	},
	{
		Name:        "Guild Lookup",
		Method:      http.MethodGet,
		Path:        "/v1/lookup/guild/",
		Description: "Look up guild information",
		Fields: []model.Field{
			{Key: "name", Label: "Guild Name", In: model.ParamInQuery, Mode: model.SearchByName},
			{Key: "oid", Label: "Guild Object ID", In: model.ParamInQuery, Mode: model.SearchByID},
		},
	},
}

// All returns a copy of the catalog in display order.
func All() []model.Endpoint {
	out := make([]model.Endpoint, len(endpoints))
	for i, ep := range endpoints {
		out[i] = clone(ep)
	}
	return out
}

// Lookup finds an endpoint by name, case-insensitively. Spaces, dashes and
// underscores are interchangeable so "object-info" matches "Object Info".
func Lookup(name string) (model.Endpoint, bool) {
	want := normalize(name)
	for _, ep := range endpoints {
		if normalize(ep.Name) == want {
			return clone(ep), true
		}
	}
	return model.Endpoint{}, false
}

// Names lists endpoint names in display order.
func Names() []string {
	out := make([]string, len(endpoints))
	for i, ep := range endpoints {
		out[i] = ep.Name
	}
	return out
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", " ", "_", " ").Replace(s)
}

func clone(ep model.Endpoint) model.Endpoint {
	if ep.Fields != nil {
		ep.Fields = append([]model.Field(nil), ep.Fields...)
	}
	return ep
}
