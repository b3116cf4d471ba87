package config

import (
	"github.com/hashicorp/hcl/v2"
)

// Model is the unified representation of all declaratively configured items.
type Model struct {
	// Items holds the loaded definitions in file discovery order, which
	// becomes hub definition order.
	Items []*ItemDefinition
}

// ItemDefinition is the format-agnostic representation of a single `item`
// block: the name, the declared relations, and the unevaluated value
// expression that becomes the item's factory.
type ItemDefinition struct {
	Name   string
	Uses   []string
	UsedBy []string

	// Value is evaluated lazily, each time the item's factory runs, with
	// the current values of the Uses relations in scope.
	Value hcl.Expression

	// Source is the file the definition came from, for error messages.
	Source string
}
