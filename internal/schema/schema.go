// Package schema holds the HCL block structures for item definition files.
// These are parse-time shapes only; the loader translates them into the
// format-agnostic config model before anything else sees them.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Item represents a single `item` block from a definition file.
//
//	item "greeting" {
//	    value = "hello"
//	}
//
//	item "message" {
//	    uses  = ["greeting"]
//	    value = "${item.greeting} world"
//	}
type Item struct {
	Name   string         `hcl:"name,label"`
	Uses   []string       `hcl:"uses,optional"`
	UsedBy []string       `hcl:"used_by,optional"`
	Value  hcl.Expression `hcl:"value"`
}

// FileRoot represents the top-level structure of an item definition file.
type FileRoot struct {
	Items  []*Item  `hcl:"item,block"`
	Remain hcl.Body `hcl:",remain"`
}
