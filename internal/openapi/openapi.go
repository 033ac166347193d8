// Package openapi describes the endpoint catalog as an OpenAPI 3 document.
package openapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-yaml"

	"swgapi/internal/model"
)

const (
	securitySchemeName = "bearerAuth"
	searchModeExt      = "x-search-mode"
)

// Build returns a validated document for eps.
func Build(ctx context.Context, eps []model.Endpoint, version string) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "SWGEmu Core3 REST API",
			Description: "Bearer token is Core3.RESTServer.APIToken from the server's config-local.lua.",
			Version:     version,
		},
		Servers: openapi3.Servers{
			&openapi3.Server{
				URL: "https://{host}:{port}",
				Variables: map[string]*openapi3.ServerVariable{
					"host": {Default: model.DefaultHost},
					"port": {Default: strconv.Itoa(model.DefaultPort)},
				},
			},
		},
		Paths: openapi3.NewPaths(),
	}

	components := openapi3.NewComponents()
	components.SecuritySchemes = openapi3.SecuritySchemes{
		securitySchemeName: &openapi3.SecuritySchemeRef{
			Value: openapi3.NewSecurityScheme().WithType("http").WithScheme("bearer"),
		},
	}
	doc.Components = &components
	doc.Security = *openapi3.NewSecurityRequirements().With(
		openapi3.NewSecurityRequirement().Authenticate(securitySchemeName),
	)

	for _, ep := range eps {
		item := doc.Paths.Value(ep.Path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(ep.Path, item)
		}
		if item.GetOperation(ep.Method) != nil {
			return nil, fmt.Errorf("duplicate operation %s %s", ep.Method, ep.Path)
		}
		item.SetOperation(ep.Method, operation(ep))
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

func operation(ep model.Endpoint) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.Summary = ep.Name
	op.Description = ep.Description
	op.OperationID = strings.ToLower(ep.Method) + strings.ReplaceAll(ep.Name, " ", "")

	for _, f := range ep.Fields {
		var p *openapi3.Parameter
		switch f.In {
		case model.ParamInPath:
			p = openapi3.NewPathParameter(f.Key)
		default:
			p = openapi3.NewQueryParameter(f.Key).WithRequired(f.Required)
		}
		p = p.WithDescription(f.Label).WithSchema(openapi3.NewStringSchema())
		if f.Mode != model.SearchAny {
			p.Extensions = map[string]any{searchModeExt: string(f.Mode)}
		}
		op.AddParameter(p)
	}

	op.AddResponse(http.StatusOK, openapi3.NewResponse().
		WithDescription("Success; usually a JSON document").
		WithJSONSchema(openapi3.NewObjectSchema()))
	op.AddResponse(http.StatusUnauthorized, openapi3.NewResponse().WithDescription("Missing or wrong API token"))
	op.AddResponse(http.StatusNotFound, openapi3.NewResponse().WithDescription("Not found"))
	return op
}

// MarshalJSON renders doc as indented-free JSON.
func MarshalJSON(doc *openapi3.T) ([]byte, error) {
	return doc.MarshalJSON()
}

// MarshalYAML renders doc as YAML.
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	b, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(b)
}

// ExtractEndpoints reads endpoints back out of a document, sorted by path
// then method.
func ExtractEndpoints(doc *openapi3.T) []model.Endpoint {
	var out []model.Endpoint
	if doc == nil || doc.Paths == nil {
		return out
	}

	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			ep := model.Endpoint{
				Name:        strings.TrimSpace(op.Summary),
				Method:      strings.ToUpper(method),
				Path:        path,
				Description: strings.TrimSpace(op.Description),
			}

			params := append(openapi3.Parameters{}, item.Parameters...)
			params = append(params, op.Parameters...)
			for _, p := range params {
				if p == nil || p.Value == nil {
					continue
				}
				f := model.Field{
					Key:      p.Value.Name,
					Label:    strings.TrimSpace(p.Value.Description),
					Required: p.Value.Required,
					Mode:     searchMode(p.Value.Extensions),
				}
				switch p.Value.In {
				case openapi3.ParameterInPath:
					f.In = model.ParamInPath
				case openapi3.ParameterInQuery:
					f.In = model.ParamInQuery
				default:
					continue
				}
				ep.Fields = append(ep.Fields, f)
			}
			out = append(out, ep)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Method < out[j].Method
		}
		return out[i].Path < out[j].Path
	})
	return out
}

func searchMode(ext map[string]any) model.SearchMode {
	v, ok := ext[searchModeExt]
	if !ok {
		return model.SearchAny
	}
	s, _ := v.(string)
	return model.SearchMode(s)
}
