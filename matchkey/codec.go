package matchkey

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// CategoryField is the mapping entry that selects the key type when decoding.
const CategoryField = "category"

var (
	// ErrUnknownCategory is returned when a document names a category that
	// was never registered.
	ErrUnknownCategory = errors.New("matchkey: unknown category")
	// ErrUnknownField is returned for mapping entries that are not fields of
	// the selected key type.
	ErrUnknownField = errors.New("matchkey: unknown field")
)

type decoder struct {
	fields map[string]struct{}
	decode func(node *yaml.Node) (Key, error)
}

var (
	codecMu    sync.RWMutex
	categories = make(map[Category]decoder)
)

// RegisterCategory binds the category of K to K for decoding. K must be a
// struct value type whose yaml tags match the names returned by Fields.
//
// It panics if the category is already bound. Call it from init().
func RegisterCategory[K Key]() {
	var zero K
	cat := zero.Category()

	fields := make(map[string]struct{})
	for _, f := range zero.Fields() {
		fields[f.Name] = struct{}{}
	}

	codecMu.Lock()
	defer codecMu.Unlock()
	if _, exists := categories[cat]; exists {
		panic(fmt.Sprintf("matchkey: category already registered: %s", cat))
	}
	categories[cat] = decoder{
		fields: fields,
		decode: func(node *yaml.Node) (Key, error) {
			var k K
			if err := node.Decode(&k); err != nil {
				return nil, err
			}
			return k, nil
		},
	}
}

// Categories returns the registered category names in lexicographic order.
func Categories() []Category {
	codecMu.RLock()
	out := make([]Category, 0, len(categories))
	for c := range categories {
		out = append(out, c)
	}
	codecMu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Decode parses a single YAML (or JSON) mapping into a key.
//
//	category: char
//	char_id: 1
//	ai_level: "*"
//
// Omitted fields are wildcards.
func Decode(data []byte) (Key, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse key: %w", err)
	}
	return DecodeNode(&node)
}

// DecodeAll reads every key from a YAML stream. Each document is either a
// mapping or a sequence of mappings.
func DecodeAll(r io.Reader) ([]Key, error) {
	dec := yaml.NewDecoder(r)
	var keys []Key
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return keys, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse keys: %w", err)
		}

		doc := &node
		if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 {
			doc = doc.Content[0]
		}
		if doc.Kind == yaml.SequenceNode {
			for _, item := range doc.Content {
				k, err := DecodeNode(item)
				if err != nil {
					return nil, err
				}
				keys = append(keys, k)
			}
			continue
		}

		k, err := DecodeNode(doc)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
}

// DecodeNode decodes an already parsed mapping node into a key.
func DecodeNode(node *yaml.Node) (Key, error) {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode key at line %d: expected a mapping", node.Line)
	}

	var cat Category
	rest := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, value := node.Content[i], node.Content[i+1]
		if name.Value == CategoryField {
			cat = Category(value.Value)
			continue
		}
		rest.Content = append(rest.Content, name, value)
	}
	if cat == "" {
		return nil, fmt.Errorf("decode key at line %d: missing %q", node.Line, CategoryField)
	}

	codecMu.RLock()
	d, ok := categories[cat]
	codecMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, cat)
	}

	for i := 0; i < len(rest.Content); i += 2 {
		name := rest.Content[i].Value
		if _, ok := d.fields[name]; !ok {
			return nil, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, cat, name)
		}
	}

	k, err := d.decode(rest)
	if err != nil {
		return nil, fmt.Errorf("decode %s key: %w", cat, err)
	}
	return k, nil
}

// Encode renders k as a YAML mapping with the category first and wildcards
// as null.
func Encode(k Key) ([]byte, error) {
	if k == nil {
		return nil, errors.New("matchkey: encode nil key")
	}
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: CategoryField},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(k.Category())},
	)
	for _, f := range k.Fields() {
		var value yaml.Node
		if err := value.Encode(f.Slot); err != nil {
			return nil, fmt.Errorf("encode field %s: %w", f.Name, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
