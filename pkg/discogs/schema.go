package discogs

import (
	"fmt"
	"maps"
	"sort"
	"sync"
)

// FieldKind selects how a field projects its JSON value.
type FieldKind int

const (
	// FieldScalar returns the raw JSON value unchanged.
	FieldScalar FieldKind = iota
	// FieldObjectList maps each element of a JSON array to an entity of the
	// field's target type.
	FieldObjectList
)

// String returns a human-readable representation of the FieldKind
func (k FieldKind) String() string {
	switch k {
	case FieldScalar:
		return "scalar"
	case FieldObjectList:
		return "object-list"
	default:
		return "unknown"
	}
}

// Field declares one attribute of an entity type.
//
// Target is the registered type name of the elements of an object-list
// field. It is only looked up when the field is resolved, so a type may
// reference itself or types registered after it.
type Field struct {
	Name   string
	Kind   FieldKind
	Target string
}

// Scalar declares a pass-through field.
func Scalar(name string) Field {
	return Field{Name: name, Kind: FieldScalar}
}

// ObjectList declares a field holding an array of target-typed objects.
func ObjectList(name, target string) Field {
	return Field{Name: name, Kind: FieldObjectList, Target: target}
}

// Resolve projects the field out of e's payload.
//
// Scalar fields return the raw value. Object-list fields return []*Entity
// built from the array elements, in order, without any network access.
// An object-list field with an unregistered target fails with
// *UnknownTypeError whether or not the key is present.
func (f Field) Resolve(e *Entity) (any, error) {
	if f.Kind == FieldObjectList {
		if _, err := e.registry.Resolve(f.Target); err != nil {
			return nil, err
		}
	}

	raw, ok := e.payload[f.Name]
	if !ok {
		return nil, &MissingFieldError{Kind: e.kind, Field: f.Name}
	}

	switch f.Kind {
	case FieldScalar:
		return raw, nil
	case FieldObjectList:
		return f.resolveObjects(e, raw)
	default:
		return nil, fmt.Errorf("discogs: field %q has unsupported kind %d", f.Name, f.Kind)
	}
}

func (f Field) resolveObjects(e *Entity, raw any) ([]*Entity, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, &FieldTypeError{Kind: e.kind, Field: f.Name, Want: "array", Got: raw}
	}

	children := make([]*Entity, 0, len(items))
	for i, item := range items {
		payload, ok := asPayload(item)
		if !ok {
			return nil, &FieldTypeError{
				Kind:  e.kind,
				Field: fmt.Sprintf("%s[%d]", f.Name, i),
				Want:  "object",
				Got:   item,
			}
		}
		children = append(children, e.registry.wrap(f.Target, payload))
	}
	return children, nil
}

// Schema is the ordered field set of one registered type.
type Schema struct {
	Name   string
	fields []Field
	index  map[string]int
}

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Registry maps type names to schemas.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]*Schema),
	}
}

// Register adds a type. Field targets are not checked here.
func (r *Registry) Register(name string, fields ...Field) error {
	if name == "" {
		return fmt.Errorf("discogs: type name is required")
	}

	s := &Schema{
		Name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("discogs: %s: field name is required", name)
		}
		if _, dup := s.index[f.Name]; dup {
			return fmt.Errorf("discogs: %s: field %q declared twice", name, f.Name)
		}
		if f.Kind == FieldObjectList && f.Target == "" {
			return fmt.Errorf("discogs: %s.%s: object-list field needs a target type", name, f.Name)
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.schemas[name]; exists {
		return fmt.Errorf("discogs: type %q already registered", name)
	}
	r.schemas[name] = s
	return nil
}

// MustRegister is Register for package-level setup; it panics on error.
func (r *Registry) MustRegister(name string, fields ...Field) {
	if err := r.Register(name, fields...); err != nil {
		panic(err)
	}
}

// Resolve returns the schema registered under name.
func (r *Registry) Resolve(name string) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[name]
	if !ok {
		return nil, &UnknownTypeError{Name: name}
	}
	return s, nil
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewEntity wraps payload as an entity of the named type. No network
// access happens and the type is not checked until a field is read.
//
// The top-level map is copied, so later changes to payload do not reach
// the entity. Nested values are shared and must not be modified.
func (r *Registry) NewEntity(kind string, payload Payload) *Entity {
	return r.wrap(kind, maps.Clone(payload))
}

// wrap builds an entity around a payload the caller no longer touches:
// a freshly decoded body or a fragment of an entity's own payload.
func (r *Registry) wrap(kind string, payload Payload) *Entity {
	if payload == nil {
		payload = Payload{}
	}
	return &Entity{kind: kind, payload: payload, registry: r}
}

func asPayload(v any) (Payload, bool) {
	switch m := v.(type) {
	case map[string]any:
		return Payload(m), true
	case Payload:
		return m, true
	default:
		return nil, false
	}
}
