package dice

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Factory returns a fresh, default-constructed node of one variant.
type Factory func() Node

// Registry maps type tags to factories so whole trees can be rebuilt from
// documents with their concrete child types.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a registry that knows the built-in variants.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register(TypeGeneric, func() Node { return NewObject("", DefaultName) })
	r.Register(TypeCard, func() Node { return NewCard("", DefaultName) })
	r.Register(TypeChip, func() Node { return NewChip("", DefaultName) })
	return r
}

// DefaultRegistry is used by Load, LoadAll and tables without their own registry.
var DefaultRegistry = NewRegistry()

// Register associates a type tag with a factory, replacing any previous one.
func (r *Registry) Register(typ string, f Factory) {
	r.factories[typ] = f
}

// New builds a node for the type tag. Unknown tags fall back to a generic
// object; the tag itself is kept once the document is applied.
func (r *Registry) New(typ string) Node {
	if f, ok := r.factories[typ]; ok {
		return f()
	}
	if typ != "" {
		logger.Debug("unknown object type, using generic", zap.String("type", typ))
	}
	return r.factories[TypeGeneric]()
}

// Load rebuilds a node and its whole subtree from a document. Each child is
// instantiated from its own type tag. Children with duplicate ids are dropped
// by AddChild with a warning.
func (r *Registry) Load(data []byte) (Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("dice: load: invalid JSON document")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("dice: load: expected object, got %s", doc.Type)
	}
	return r.load(doc)
}

// LoadAll rebuilds a list of root nodes from a JSON array of documents.
func (r *Registry) LoadAll(data []byte) ([]Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("dice: load: invalid JSON document")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, fmt.Errorf("dice: load: expected array, got %s", doc.Type)
	}
	var (
		nodes []Node
		err   error
	)
	doc.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			err = fmt.Errorf("dice: load: expected object, got %s", item.Type)
			return false
		}
		var n Node
		if n, err = r.load(item); err != nil {
			return false
		}
		nodes = append(nodes, n)
		return true
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *Registry) load(doc gjson.Result) (Node, error) {
	n := r.New(doc.Get("type").String())
	if err := n.UnmarshalJSON([]byte(doc.Raw)); err != nil {
		return nil, err
	}

	children := doc.Get("children")
	if !children.Exists() || children.Type == gjson.Null {
		return n, nil
	}
	if !children.IsArray() {
		return nil, fmt.Errorf("dice: load %q: children must be an array", n.Base().ID)
	}
	var err error
	children.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			err = fmt.Errorf("dice: load %q: child must be an object, got %s", n.Base().ID, item.Type)
			return false
		}
		var child Node
		if child, err = r.load(item); err != nil {
			return false
		}
		n.Base().AddChild(child)
		return true
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Load rebuilds a tree with DefaultRegistry.
func Load(data []byte) (Node, error) {
	return DefaultRegistry.Load(data)
}

// LoadAll rebuilds a list of trees with DefaultRegistry.
func LoadAll(data []byte) ([]Node, error) {
	return DefaultRegistry.LoadAll(data)
}
