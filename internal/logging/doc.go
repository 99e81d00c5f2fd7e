// Package logging builds the zap logger shared by every command. Output is a
// plain console encoding without timestamps or callers so diagnostics read
// like ordinary CLI messages on stderr.
package logging
