package tui

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jfmyers9/crates/internal/catalog"
	"github.com/jfmyers9/crates/pkg/discogs"
	"github.com/mattn/go-runewidth"
)

// Node is the model behind one tree row.
//
// Entity nodes have a nil Field. Field nodes carry the owning entity and
// the field; scalar fields also carry the value.
type Node struct {
	Label  string
	Entity *discogs.Entity
	Field  *discogs.Field
	Value  any
	Err    error // Field could not be resolved
}

// Expandable reports whether the node has children to show
func (n Node) Expandable() bool {
	if n.Err != nil || n.Entity == nil {
		return false
	}
	return n.Field == nil || n.Field.Kind == discogs.FieldObjectList
}

// Children resolves the rows under n. Entity nodes list their present
// fields in schema order; object-list field nodes list one entity per
// element. No request is made.
func Children(n Node) ([]Node, error) {
	if !n.Expandable() {
		return nil, nil
	}
	if n.Field != nil {
		return objectChildren(n)
	}

	fields, err := n.Entity.Fields()
	if err != nil {
		return nil, err
	}

	var out []Node
	for _, f := range fields {
		if !n.Entity.Has(f.Name) {
			continue
		}
		f := f // per-iteration copy; &f is retained below (pre-Go 1.22 loop semantics)
		child := Node{Entity: n.Entity, Field: &f}

		switch f.Kind {
		case discogs.FieldObjectList:
			objs, err := n.Entity.Objects(f.Name)
			if err != nil {
				child.Err = err
				child.Label = f.Name + ": " + err.Error()
			} else {
				child.Label = f.Name + " [" + strconv.Itoa(len(objs)) + "]"
			}
		default:
			v, err := n.Entity.Get(f.Name)
			if err != nil {
				child.Err = err
				child.Label = f.Name + ": " + err.Error()
			} else {
				child.Value = v
				child.Label = f.Name + ": " + catalog.FormatValue(v)
			}
		}
		out = append(out, child)
	}
	return out, nil
}

func objectChildren(n Node) ([]Node, error) {
	objs, err := n.Entity.Objects(n.Field.Name)
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(objs))
	for i, o := range objs {
		out[i] = Node{Label: o.String(), Entity: o}
	}
	return out, nil
}

// Detail renders the full value of a node for the side panel
func Detail(n Node) string {
	switch {
	case n.Err != nil:
		return n.Err.Error()
	case n.Entity == nil:
		return ""
	case n.Field == nil:
		b, err := json.MarshalIndent(n.Entity.Payload(), "", "  ")
		if err != nil {
			return n.Entity.String()
		}
		return n.Entity.Kind() + "\n\n" + string(b)
	case n.Field.Kind == discogs.FieldObjectList:
		objs, err := n.Entity.Objects(n.Field.Name)
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("%d %s entries", len(objs), n.Field.Target)
	default:
		if s, ok := n.Value.(string); ok {
			return s
		}
		b, err := json.MarshalIndent(n.Value, "", "  ")
		if err != nil {
			return catalog.FormatValue(n.Value)
		}
		return string(b)
	}
}

// Truncate shortens s to width display columns. A width <= 0 disables it.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
