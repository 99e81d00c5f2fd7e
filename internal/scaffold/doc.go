// Package scaffold owns the template tree that agentkit copies into projects.
// The default tree is embedded in the binary (with its dot-directories) so a
// release needs no files next to the executable; a directory on disk can be
// used instead when the user configures one.
package scaffold
