package model

import (
	"strconv"
	"strings"
	"time"
)

type ParamLocation string

type SearchMode string

const (
	ParamInPath  ParamLocation = "path"
	ParamInQuery ParamLocation = "query"

	// SearchAny marks a field that is active regardless of the search mode.
	SearchAny    SearchMode = ""
	SearchByName SearchMode = "name"
	SearchByID   SearchMode = "id"
)

const (
	DefaultHost    = "localhost"
	DefaultPort    = 44443
	DefaultTimeout = 10 * time.Second
)

// Field is one operator-supplied input of an endpoint.
type Field struct {
	Key      string
	Label    string
	Required bool
	In       ParamLocation
	Mode     SearchMode
}

type Endpoint struct {
	Name        string
	Method      string
	Path        string
	Description string

	Fields []Field
}

// HasSearchModes reports whether the endpoint offers a by-name / by-id choice.
func (e Endpoint) HasSearchModes() bool {
	for _, f := range e.Fields {
		if f.Mode != SearchAny {
			return true
		}
	}
	return false
}

// ActiveFields returns the fields that apply under mode, in declaration order.
func (e Endpoint) ActiveFields(mode SearchMode) []Field {
	if !e.HasSearchModes() {
		return e.Fields
	}
	if mode == SearchAny {
		mode = SearchByName
	}
	var out []Field
	for _, f := range e.Fields {
		if f.Mode == SearchAny || f.Mode == mode {
			out = append(out, f)
		}
	}
	return out
}

// Params is the name -> value mapping sent with a request.
type Params map[string]string

// ParamsFor collects the non-empty values of the fields active under mode.
// Values are kept exactly as entered.
func ParamsFor(ep Endpoint, mode SearchMode, vals map[string]string) Params {
	out := Params{}
	for _, f := range ep.ActiveFields(mode) {
		v := vals[f.Key]
		if v == "" {
			continue
		}
		out[f.Key] = v
	}
	return out
}

// Clone returns a copy that can be mutated without touching p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

type Connection struct {
	Host     string
	Port     int
	Token    string
	Insecure bool
	CAFile   string
	Timeout  time.Duration
}

func DefaultConnection() Connection {
	return Connection{Host: DefaultHost, Port: DefaultPort, Insecure: true, Timeout: DefaultTimeout}
}

// BaseURL is scheme://host:port with no path.
func (c Connection) BaseURL() string {
	return "https://" + strings.TrimSpace(c.Host) + ":" + strconv.Itoa(c.Port)
}

// RequestIntent is everything one execution needs, assembled up front.
type RequestIntent struct {
	Endpoint   Endpoint
	Connection Connection
	Mode       SearchMode
	Values     map[string]string
}

func NewRequestIntent(ep Endpoint, conn Connection, mode SearchMode, vals map[string]string) RequestIntent {
	copied := make(map[string]string, len(vals))
	for k, v := range vals {
		copied[k] = v
	}
	return RequestIntent{Endpoint: ep, Connection: conn, Mode: mode, Values: copied}
}

// Params resolves the intent's values against the endpoint's field schema.
func (ri RequestIntent) Params() Params {
	return ParamsFor(ri.Endpoint, ri.Mode, ri.Values)
}

func ParseSearchMode(s string) (SearchMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name", "by-name", "byname":
		return SearchByName, true
	case "id", "oid", "by-id", "byid":
		return SearchByID, true
	default:
		return SearchAny, false
	}
}

func (m SearchMode) Label() string {
	switch m {
	case SearchByID:
		return "By Object ID"
	default:
		return "By Name"
	}
}

func (m SearchMode) Toggle() SearchMode {
	if m == SearchByID {
		return SearchByName
	}
	return SearchByID
}
