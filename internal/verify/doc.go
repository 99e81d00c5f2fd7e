// Package verify compares a project directory with the template tree it was
// populated from. It reports template entries that are missing or differ in
// the destination, and destination JSON files that no longer parse. Files the
// template does not know about are never reported.
package verify
