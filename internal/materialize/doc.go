// Package materialize reproduces a template tree under a destination
// directory. Directories are created on demand, regular files are written
// byte for byte (existing files are truncated and overwritten), and any
// other entry kind (symlinks, devices, sockets, pipes) aborts the copy.
//
// The traversal is sequential and stops at the first failure. Entries already
// written stay on disk; there is no rollback.
package materialize
