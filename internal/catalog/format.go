package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jfmyers9/crates/pkg/discogs"
)

// FormatValue renders a raw field value on one line. Strings are shown
// as-is, string arrays are comma separated, other composites are compact
// JSON.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case []any:
		if strs, ok := stringSlice(x); ok {
			return strings.Join(strs, ", ")
		}
	}

	b, err := json.Marshal(Plain(v))
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Plain converts a decoded value into plain Go types: json.Number becomes
// int64 or float64, entities become their payloads. Encoders that know
// nothing about json.Number (YAML) need this.
func Plain(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case discogs.Payload:
		return Plain(map[string]any(x))
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Plain(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Plain(val)
		}
		return out
	case *discogs.Entity:
		return Plain(x.Payload())
	case []*discogs.Entity:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Plain(e.Payload())
		}
		return out
	default:
		return v
	}
}

// Fetchable reports the kind and ID to request e in full, for entities
// embedded in another payload that only carry a reference.
func Fetchable(e *discogs.Entity) (kind string, id int, ok bool) {
	switch e.Kind() {
	case discogs.KindRelease, discogs.KindMaster, discogs.KindArtist, discogs.KindLabel:
	default:
		return "", 0, false
	}
	id, err := e.ID()
	if err != nil || id <= 0 {
		return "", 0, false
	}
	return e.Kind(), id, true
}

func stringSlice(items []any) ([]string, bool) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
