// Package rules is the named registry of allocation rules: each entry
// binds a rule name to its required input series, a typed parameter
// struct with defaults and validation tags, and an apply function that
// writes the allocation column of a frame.
package rules

import (
	"fmt"
	"sort"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/allocrun/allocrun/internal/frame"
)

var validate = validator.New()

// Definition describes a registered allocation rule.
type Definition struct {
	Name        string
	Description string
	// Series lists the input columns the rule needs beyond price.
	Series []string
	// NewParams returns a fresh pointer to the rule's params struct.
	NewParams func() any
	// Apply computes the allocation column in place. The second return
	// value is an optional rule-specific report (nil for simple rules).
	Apply func(f *frame.Frame, params any) (any, error)
}

var registry = map[string]Definition{}

func register(def Definition) {
	if _, dup := registry[def.Name]; dup {
		panic(fmt.Sprintf("rule %q registered twice", def.Name))
	}
	registry[def.Name] = def
}

// Get looks up a rule by name.
func Get(name string) (Definition, bool) {
	def, ok := registry[name]
	return def, ok
}

// Names returns all registered rule names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all definitions sorted by name.
func All() []Definition {
	defs := make([]Definition, 0, len(registry))
	for _, name := range Names() {
		defs = append(defs, registry[name])
	}
	return defs
}

// DecodeParams builds the rule's params from an optional YAML node:
// decode, fill defaults, then validate.
func DecodeParams(def Definition, node *yaml.Node) (any, error) {
	params := def.NewParams()
	if node != nil && node.Kind != 0 {
		if err := node.Decode(params); err != nil {
			return nil, fmt.Errorf("decode params for rule %q: %w", def.Name, err)
		}
	}
	if err := defaults.Set(params); err != nil {
		return nil, fmt.Errorf("apply param defaults for rule %q: %w", def.Name, err)
	}
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid params for rule %q: %w", def.Name, err)
	}
	return params, nil
}
