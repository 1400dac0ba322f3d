package discogs

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"strconv"
)

// Payload is a decoded JSON object describing one entity.
type Payload map[string]any

// Entity is a typed view over a payload. Fields are resolved on access
// through the schema registered for the entity's kind.
//
// Entities are immutable and safe for concurrent reads.
type Entity struct {
	kind     string
	payload  Payload
	registry *Registry
}

// NewEntity wraps payload as an entity of kind using DefaultRegistry.
func NewEntity(kind string, payload Payload) *Entity {
	return DefaultRegistry.NewEntity(kind, payload)
}

// Kind returns the registered type name of the entity.
func (e *Entity) Kind() string {
	return e.kind
}

// Payload returns a shallow copy of the underlying JSON object.
func (e *Entity) Payload() Payload {
	return maps.Clone(e.payload)
}

// Has reports whether key is present in the payload.
func (e *Entity) Has(key string) bool {
	_, ok := e.payload[key]
	return ok
}

// Schema returns the schema of the entity's kind.
func (e *Entity) Schema() (*Schema, error) {
	return e.registry.Resolve(e.kind)
}

// Fields returns the fields declared for the entity's kind.
func (e *Entity) Fields() ([]Field, error) {
	s, err := e.Schema()
	if err != nil {
		return nil, err
	}
	return s.Fields(), nil
}

// Get resolves a declared field. Scalar fields return the raw JSON value;
// object-list fields return []*Entity.
func (e *Entity) Get(name string) (any, error) {
	s, err := e.Schema()
	if err != nil {
		return nil, err
	}
	f, ok := s.Field(name)
	if !ok {
		return nil, &UndeclaredFieldError{Kind: e.kind, Field: name}
	}
	return f.Resolve(e)
}

// Objects resolves an object-list field.
func (e *Entity) Objects(name string) ([]*Entity, error) {
	v, err := e.Get(name)
	if err != nil {
		return nil, err
	}
	objs, ok := v.([]*Entity)
	if !ok {
		return nil, &FieldTypeError{Kind: e.kind, Field: name, Want: "object list", Got: v}
	}
	return objs, nil
}

// GetString resolves a scalar field holding a string.
func (e *Entity) GetString(name string) (string, error) {
	v, err := e.Get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &FieldTypeError{Kind: e.kind, Field: name, Want: "string", Got: v}
	}
	return s, nil
}

// GetInt resolves a scalar field holding an integral number.
func (e *Entity) GetInt(name string) (int, error) {
	v, err := e.Get(name)
	if err != nil {
		return 0, err
	}
	n, ok := toInt(v)
	if !ok {
		return 0, &FieldTypeError{Kind: e.kind, Field: name, Want: "integer", Got: v}
	}
	return n, nil
}

// GetFloat resolves a scalar field holding a number.
func (e *Entity) GetFloat(name string) (float64, error) {
	v, err := e.Get(name)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, &FieldTypeError{Kind: e.kind, Field: name, Want: "number", Got: v}
	}
	return f, nil
}

// GetBool resolves a scalar field holding a boolean.
func (e *Entity) GetBool(name string) (bool, error) {
	v, err := e.Get(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, &FieldTypeError{Kind: e.kind, Field: name, Want: "boolean", Got: v}
	}
	return b, nil
}

// GetStrings resolves a scalar field holding an array of strings.
func (e *Entity) GetStrings(name string) ([]string, error) {
	v, err := e.Get(name)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &FieldTypeError{Kind: e.kind, Field: name, Want: "array of strings", Got: v}
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &FieldTypeError{Kind: e.kind, Field: fmt.Sprintf("%s[%d]", name, i), Want: "string", Got: item}
		}
		out = append(out, s)
	}
	return out, nil
}

// ID returns the Discogs ID.
func (e *Entity) ID() (int, error) { return e.GetInt("id") }

// DataQuality returns the community data quality rating.
func (e *Entity) DataQuality() (string, error) { return e.GetString("data_quality") }

// ResourceURL returns the API URL of the entity.
func (e *Entity) ResourceURL() (string, error) { return e.GetString("resource_url") }

// URI returns the website URL of the entity.
func (e *Entity) URI() (string, error) { return e.GetString("uri") }

// Images returns the entity's images.
func (e *Entity) Images() ([]*Image, error) {
	return wrapAll(e, "images", func(x *Entity) *Image { return &Image{x} })
}

// String returns a one-line summary such as "Title - resource_url".
// Missing fields are shown as "?".
func (e *Entity) String() string {
	str := func(name string) string {
		v, ok := e.payload[name]
		if !ok || v == nil {
			return "?"
		}
		return fmt.Sprint(v)
	}

	switch e.kind {
	case KindRelease, KindMaster:
		return str("title") + " - " + str("resource_url")
	case KindArtist, KindLabel:
		return str("name") + " - " + str("resource_url")
	case KindTrack:
		return str("position") + " - " + str("title")
	case KindImage:
		return str("type") + " - " + str("uri")
	default:
		return e.kind + " " + str("id")
	}
}

// wrapAll resolves an object-list field and wraps each child.
func wrapAll[T any](e *Entity, name string, wrap func(*Entity) T) ([]T, error) {
	objs, err := e.Objects(name)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(objs))
	for i, o := range objs {
		out[i] = wrap(o)
	}
	return out, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt || n >= -math.MinInt {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := strconv.ParseInt(string(n), 10, strconv.IntSize)
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
