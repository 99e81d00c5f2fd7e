// Package manifest handles parsing and validation of template manifests: the
// YAML metadata (name, version, minimum CLI version) that ships alongside a
// template tree. Manifests are validated against an embedded JSON Schema and
// their versions are checked with semver.
package manifest
