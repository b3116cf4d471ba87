package hcl

import (
	"fmt"

	"github.com/vk/itemhub/internal/config"
	"github.com/vk/itemhub/internal/schema"
)

// translateItem converts an HCL item block into the format-agnostic model.
func translateItem(item *schema.Item, source string) (*config.ItemDefinition, error) {
	if item.Name == "" {
		return nil, fmt.Errorf("item block in %s has an empty name label", source)
	}

	return &config.ItemDefinition{
		Name:   item.Name,
		Uses:   item.Uses,
		UsedBy: item.UsedBy,
		Value:  item.Value,
		Source: source,
	}, nil
}
