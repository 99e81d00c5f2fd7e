// Package cli defines the Cobra command tree for the agentkit CLI. The root
// command copies the template into a project; each other file registers one
// subcommand (list, doctor, version, config). Commands delegate the real work
// to internal packages and only handle flags, settings and output.
package cli
