package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Packages maps a category to its ordered package names. Category order is
// insertion order and survives a load/save cycle.
type Packages struct {
	order []string
	lists map[string][]string
}

// Categories returns the categories in insertion order.
func (p *Packages) Categories() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// List returns the package names registered under category.
func (p *Packages) List(category string) ([]string, bool) {
	names, ok := p.lists[category]
	if !ok {
		return nil, false
	}
	out := make([]string, len(names))
	copy(out, names)
	return out, true
}

// Contains reports whether name is registered under category.
func (p *Packages) Contains(category, name string) bool {
	for _, n := range p.lists[category] {
		if n == name {
			return true
		}
	}
	return false
}

// Add appends name to category, creating the category if needed.
// It returns false when the name is already present.
func (p *Packages) Add(category, name string) bool {
	if p.Contains(category, name) {
		return false
	}
	if p.lists == nil {
		p.lists = make(map[string][]string)
	}
	if _, ok := p.lists[category]; !ok {
		p.order = append(p.order, category)
		p.lists[category] = []string{}
	}
	p.lists[category] = append(p.lists[category], name)
	return true
}

// Remove deletes name from category. The category itself is kept, even when
// it becomes empty.
func (p *Packages) Remove(category, name string) bool {
	names, ok := p.lists[category]
	if !ok {
		return false
	}
	for i, n := range names {
		if n == name {
			p.lists[category] = append(names[:i:i], names[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the total number of registered packages.
func (p *Packages) Len() int {
	total := 0
	for _, names := range p.lists {
		total += len(names)
	}
	return total
}

// Clone returns a deep copy.
func (p *Packages) Clone() Packages {
	c := Packages{
		order: make([]string, len(p.order)),
		lists: make(map[string][]string, len(p.lists)),
	}
	copy(c.order, p.order)
	for cat, names := range p.lists {
		cp := make([]string, len(names))
		copy(cp, names)
		c.lists[cat] = cp
	}
	return c
}

// MarshalYAML emits the categories as a mapping in insertion order.
func (p Packages) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if len(p.order) == 0 {
		node.Style = yaml.FlowStyle
	}
	for _, cat := range p.order {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		names := p.lists[cat]
		if len(names) == 0 {
			seq.Style = yaml.FlowStyle
		}
		for _, name := range names {
			seq.Content = append(seq.Content, strNode(name))
		}
		node.Content = append(node.Content, strNode(cat), seq)
	}
	return node, nil
}

// UnmarshalYAML reads a category mapping, keeping the document order.
func (p *Packages) UnmarshalYAML(value *yaml.Node) error {
	p.order = nil
	p.lists = make(map[string][]string)

	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: packages must be a mapping of category to package list", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		var names []string
		if err := value.Content[i+1].Decode(&names); err != nil {
			return fmt.Errorf("line %d: category %q: %w", key.Line, key.Value, err)
		}
		if _, dup := p.lists[key.Value]; dup {
			return fmt.Errorf("line %d: duplicate category %q", key.Line, key.Value)
		}
		if names == nil {
			names = []string{}
		}
		p.order = append(p.order, key.Value)
		p.lists[key.Value] = names
	}
	return nil
}

func strNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
