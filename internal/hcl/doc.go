// Package hcl provides the concrete HCL implementation of the config.Loader
// interface, plus the hub component that exposes loaded item definitions.
// It owns all file parsing, HCL-to-model translation, and cty-to-Go data
// binding.
package hcl
