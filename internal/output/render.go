package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"swgapi/internal/errors"
	"swgapi/internal/httpclient"
	"swgapi/internal/model"
)

// EndpointTable lists endpoints with their inputs.
func EndpointTable(eps []model.Endpoint) Data {
	caser := cases.Title(language.English)
	d := Data{Headers: []string{"#", "Name", "Method", "Path", "Inputs", "Description"}}
	for i, ep := range eps {
		var inputs []string
		for _, f := range ep.Fields {
			in := f.Key + " (" + caser.String(string(f.In))
			if f.Mode != model.SearchAny {
				in += ", " + strings.ToLower(f.Mode.Label())
			}
			if f.Required {
				in += ", required"
			}
			inputs = append(inputs, in+")")
		}
		d.Rows = append(d.Rows, []string{
			fmt.Sprint(i + 1),
			ep.Name,
			ep.Method,
			ep.Path,
			strings.Join(inputs, "; "),
			ep.Description,
		})
	}
	return d
}

// EndpointSummary is the json/yaml shape of a catalog entry.
type EndpointSummary struct {
	Name        string         `json:"name" yaml:"name"`
	Method      string         `json:"method" yaml:"method"`
	Path        string         `json:"path" yaml:"path"`
	Description string         `json:"description" yaml:"description"`
	Fields      []FieldSummary `json:"fields,omitempty" yaml:"fields,omitempty"`
}

type FieldSummary struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`
	In       string `json:"in" yaml:"in"`
	Required bool   `json:"required" yaml:"required"`
	Mode     string `json:"mode,omitempty" yaml:"mode,omitempty"`
}

func Summaries(eps []model.Endpoint) []EndpointSummary {
	out := make([]EndpointSummary, 0, len(eps))
	for _, ep := range eps {
		s := EndpointSummary{Name: ep.Name, Method: ep.Method, Path: ep.Path, Description: ep.Description}
		for _, f := range ep.Fields {
			s.Fields = append(s.Fields, FieldSummary{
				Key: f.Key, Label: f.Label, In: string(f.In), Required: f.Required, Mode: string(f.Mode),
			})
		}
		out = append(out, s)
	}
	return out
}

// WriteRequest prints the request line, headers and params with the token masked.
func WriteRequest(w io.Writer, req httpclient.RequestSpec) {
	red := req.Redacted()
	fmt.Fprintf(w, "%s %s\n", red.Method, red.URL)
	for _, k := range sortedKeys(red.Headers) {
		fmt.Fprintf(w, "%s: %s\n", k, red.Headers[k])
	}
	if len(red.Query) > 0 {
		var parts []string
		for _, k := range sortedKeys(red.Query) {
			parts = append(parts, k+"="+red.Query[k])
		}
		fmt.Fprintf(w, "params: %s\n", strings.Join(parts, " "))
	}
}

// WriteBody prints a successful response body: decoded JSON in format,
// anything else as raw text.
func WriteBody(w io.Writer, res httpclient.Result, format Format, color bool) error {
	if !res.Parsed || format == FormatRaw {
		_, err := io.WriteString(w, ensureNewline(res.Body))
		return err
	}
	switch format {
	case FormatYAML:
		return NewFormatter(FormatYAML).Format(w, yamlValue(res.JSON))
	default:
		_, err := io.WriteString(w, PrettyJSON(res.JSON, color)+"\n")
		return err
	}
}

// WriteOutcome prints status and body, or the classified error.
func WriteOutcome(w io.Writer, res httpclient.Result, err error, format Format, color bool) {
	if err != nil {
		fmt.Fprintf(w, "%s%s%s\n", colorFor(res.StatusCode, color), errors.Kind(err), resetFor(color))
		var ae *errors.ApplicationError
		if errors.As(err, &ae) {
			fmt.Fprintf(w, "status: %s\n", statusText(res, ae))
			fmt.Fprintf(w, "elapsed: %s\n\n", res.Elapsed)
			fmt.Fprint(w, ensureNewline(ae.Body))
			return
		}
		fmt.Fprintln(w, err.Error())
		return
	}
	fmt.Fprintf(w, "%s%s%s\n", colorFor(res.StatusCode, color), res.Status, resetFor(color))
	fmt.Fprintf(w, "elapsed: %s\n", res.Elapsed)
	if res.ContentType != "" {
		fmt.Fprintf(w, "content-type: %s\n", res.ContentType)
	}
	fmt.Fprintln(w)
	_ = WriteBody(w, res, format, color)
}

func statusText(res httpclient.Result, ae *errors.ApplicationError) string {
	if res.Status != "" {
		return res.Status
	}
	return fmt.Sprint(ae.StatusCode)
}

func colorFor(code int, color bool) string {
	if !color {
		return ""
	}
	switch {
	case code >= 200 && code < 300:
		return colorString
	case code >= 400 && code < 500:
		return colorNumber
	default:
		return "\033[31m"
	}
}

func resetFor(color bool) string {
	if !color {
		return ""
	}
	return colorReset
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
