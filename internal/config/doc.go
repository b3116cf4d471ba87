// Package config defines the format-agnostic model for declaratively
// configured items, plus the Loader interface a format-specific
// implementation (currently HCL) must satisfy. Keeping the model free of
// parser types lets the hub wiring stay independent of the file format.
package config
