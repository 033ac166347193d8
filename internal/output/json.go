package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ansi color codes
const (
	colorReset   = "\033[0m"
	colorKey     = "\033[36m" // cyan for keys
	colorString  = "\033[32m" // green for strings
	colorNumber  = "\033[33m" // yellow for numbers
	colorBool    = "\033[35m" // magenta for booleans
	colorNull    = "\033[90m" // gray for null
	colorBracket = "\033[37m" // white for brackets
)

type palette struct {
	reset, key, str, num, boolean, null, bracket string
}

var (
	colored = palette{colorReset, colorKey, colorString, colorNumber, colorBool, colorNull, colorBracket}
	plain   = palette{}
)

// PrettyJSON indents a decoded JSON value with object keys sorted. With
// color set, tokens carry ANSI colors.
func PrettyJSON(v any, color bool) string {
	p := plain
	if color {
		p = colored
	}
	return p.render(v, 0)
}

func (p palette) render(v any, indent int) string {
	prefix := strings.Repeat("  ", indent)

	switch val := v.(type) {
	case nil:
		return p.null + "null" + p.reset
	case bool:
		return p.boolean + fmt.Sprintf("%v", val) + p.reset
	case json.Number:
		return p.num + val.String() + p.reset
	case float64:
		return p.num + strconv.FormatFloat(val, 'g', -1, 64) + p.reset
	case string:
		return p.str + `"` + escapeJSON(val) + `"` + p.reset
	case []any:
		if len(val) == 0 {
			return p.bracket + "[]" + p.reset
		}
		var sb strings.Builder
		sb.WriteString(p.bracket + "[" + p.reset + "\n")
		for i, item := range val {
			sb.WriteString(prefix + "  " + p.render(item, indent+1))
			if i < len(val)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(prefix + p.bracket + "]" + p.reset)
		return sb.String()
	case map[string]any:
		if len(val) == 0 {
			return p.bracket + "{}" + p.reset
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var sb strings.Builder
		sb.WriteString(p.bracket + "{" + p.reset + "\n")
		for i, k := range keys {
			sb.WriteString(prefix + "  " + p.key + `"` + escapeJSON(k) + `"` + p.reset + ": ")
			sb.WriteString(p.render(val[k], indent+1))
			if i < len(keys)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(prefix + p.bracket + "}" + p.reset)
		return sb.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func escapeJSON(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// yamlValue turns json.Number leaves into YAML scalars. Integers that fit
// neither int64 nor uint64 stay strings so no digits are lost.
func yamlValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(val.String(), 10, 64); err == nil {
			return u
		}
		if !strings.ContainsAny(val.String(), ".eE") {
			return val.String()
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = yamlValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = yamlValue(item)
		}
		return out
	default:
		return v
	}
}
