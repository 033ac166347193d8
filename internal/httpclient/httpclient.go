package httpclient

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"swgapi/internal/errors"
	"swgapi/internal/model"
)

type RequestSpec struct {
	Method  string
	URL     string
	Path    string
	Query   model.Params
	Headers map[string]string

	Timeout time.Duration
	TLS     TLSOptions
}

var placeholderRe = regexp.MustCompile(`\{([^}]+)\}`)

// BuildRequest validates an intent and turns it into a request ready to send.
// Path placeholders consume their params; whatever is left goes in the query.
func BuildRequest(ri model.RequestIntent) (RequestSpec, error) {
	conn := ri.Connection
	if err := validateConnection(conn); err != nil {
		return RequestSpec{}, err
	}

	params := ri.Params()
	for _, f := range ri.Endpoint.ActiveFields(ri.Mode) {
		if f.Required && params[f.Key] == "" {
			return RequestSpec{}, errors.NewValidationError(f.Key, firstNonEmpty(f.Label, f.Key)+" is required")
		}
	}

	path, query, err := substitutePath(ri.Endpoint.Path, ri.Endpoint.ActiveFields(ri.Mode), params)
	if err != nil {
		return RequestSpec{}, err
	}

	u, err := joinURL(conn.BaseURL(), path)
	if err != nil {
		return RequestSpec{}, errors.NewValidationError("path", err.Error())
	}
	q := u.Query()
	for _, k := range sortedKeys(query) {
		q.Set(k, query[k])
	}
	u.RawQuery = q.Encode()

	timeout := conn.Timeout
	if timeout <= 0 {
		timeout = model.DefaultTimeout
	}

	return RequestSpec{
		Method: ri.Endpoint.Method,
		URL:    u.String(),
		Path:   path,
		Query:  query,
		Headers: map[string]string{
			"Authorization": "Bearer " + conn.Token,
			"Content-Type":  "application/json",
		},
		Timeout: timeout,
		TLS:     TLSOptions{CAFile: conn.CAFile, InsecureSkipVerify: conn.Insecure},
	}, nil
}

func validateConnection(conn model.Connection) error {
	if conn.Token == "" {
		return errors.NewValidationError("token", "API token is required")
	}
	if strings.TrimSpace(conn.Host) == "" {
		return errors.NewValidationError("host", "host is required")
	}
	if conn.Port < 1 || conn.Port > 65535 {
		return errors.NewValidationError("port", "port must be between 1 and 65535")
	}
	return nil
}

// substitutePath replaces each {name} in tpl with the value of the path
// field of that name, verbatim, and drops it from the returned query params
// so a value never lands in both. Only fields declared In path are
// substituted.
func substitutePath(tpl string, fields []model.Field, params model.Params) (string, model.Params, error) {
	inPath := make(map[string]bool)
	for _, f := range fields {
		if f.In == model.ParamInPath {
			inPath[f.Key] = true
		}
	}

	query := params.Clone()
	for name := range inPath {
		delete(query, name)
	}

	var missing string
	out := placeholderRe.ReplaceAllStringFunc(tpl, func(m string) string {
		name := m[1 : len(m)-1]
		v := params[name]
		if !inPath[name] || v == "" {
			if missing == "" {
				missing = name
			}
			return m
		}
		return v
	})
	if missing != "" {
		return "", nil, errors.NewValidationError(missing, "path parameter "+missing+" is required")
	}
	return out, query, nil
}

// joinURL resolves path against base per RFC 3986: an absolute path
// replaces whatever path the base carried. A path that is not a valid
// reference (a stray "%" in a value) is sent with the bad bytes escaped.
func joinURL(base, path string) (*url.URL, error) {
	b, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	ref, err := url.Parse(path)
	if err != nil {
		ref = &url.URL{Path: path}
	}
	return b.ResolveReference(ref), nil
}

// Redacted returns a copy safe to display or log.
func (r RequestSpec) Redacted() RequestSpec {
	out := r
	out.Headers = make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		if strings.EqualFold(k, "Authorization") {
			v = maskAuthorization(v)
		}
		out.Headers[k] = v
	}
	out.Query = r.Query.Clone()
	return out
}

func maskAuthorization(v string) string {
	scheme, tok, ok := strings.Cut(v, " ")
	if !ok {
		return MaskToken(v)
	}
	return scheme + " " + MaskToken(tok)
}

// MaskToken keeps the first and last two characters of s.
func MaskToken(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
