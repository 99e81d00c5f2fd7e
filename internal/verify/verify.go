package verify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentkit-dev/agentkit/internal/materialize"
	"github.com/tidwall/jsonc"
)

// Status classifies a single finding.
type Status string

const (
	StatusOK          Status = "ok"
	StatusMissing     Status = "missing"
	StatusDiffers     Status = "differs"
	StatusNotDir      Status = "not-a-directory"
	StatusInvalidJSON Status = "invalid-json"
	StatusUnreadable  Status = "unreadable"
	StatusUnsupported Status = "unsupported"
)

// Finding is the result of checking one template entry.
type Finding struct {
	Path   string // Slash-separated, relative to the template root
	Status Status
	Detail string
}

// Report collects the findings of a Check.
type Report struct {
	Destination string
	Findings    []Finding
}

// Clean reports whether every finding is StatusOK.
func (r *Report) Clean() bool {
	for _, f := range r.Findings {
		if f.Status != StatusOK {
			return false
		}
	}
	return true
}

// Count returns the number of findings with the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, f := range r.Findings {
		if f.Status == status {
			n++
		}
	}
	return n
}

// Write prints one line per finding, doctor style.
func (r *Report) Write(w io.Writer) {
	fmt.Fprintf(w, "Template check for %s:\n", r.Destination)
	for _, f := range r.Findings {
		line := fmt.Sprintf("  %s %s", tag(f.Status), f.Path)
		if f.Detail != "" {
			line += " (" + f.Detail + ")"
		}
		fmt.Fprintln(w, line)
	}
}

func tag(s Status) string {
	switch s {
	case StatusOK:
		return "[ OK ]"
	case StatusMissing:
		return "[MISS]"
	case StatusDiffers:
		return "[DIFF]"
	default:
		return "[FAIL]"
	}
}

// Check walks src and compares every entry with its counterpart under dst.
// The error return is for failures reading the template itself.
func Check(src fs.FS, dst string) (*Report, error) {
	report := &Report{Destination: dst}

	err := fs.WalkDir(src, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}
		if p == "." {
			return nil
		}

		target := filepath.Join(dst, filepath.FromSlash(p))
		if entry.IsDir() {
			finding := checkDir(p, target)
			report.Findings = append(report.Findings, finding)
			if finding.Status != StatusOK {
				// Everything below is missing too; one finding is enough.
				return fs.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() {
			// The materializer refuses these, so the template cannot be
			// reproduced no matter what the destination holds.
			report.Findings = append(report.Findings, Finding{
				Path:   p,
				Status: StatusUnsupported,
				Detail: "template entry is a " + materialize.KindOf(entry.Type()),
			})
			return nil
		}

		want, err := fs.ReadFile(src, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}
		report.Findings = append(report.Findings, checkFile(p, target, want))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

func checkDir(rel, target string) Finding {
	info, err := os.Stat(target)
	switch {
	case os.IsNotExist(err):
		return Finding{Path: rel, Status: StatusMissing}
	case err != nil:
		return Finding{Path: rel, Status: StatusUnreadable, Detail: err.Error()}
	case !info.IsDir():
		return Finding{Path: rel, Status: StatusNotDir}
	}
	return Finding{Path: rel, Status: StatusOK}
}

func checkFile(rel, target string, want []byte) Finding {
	got, err := os.ReadFile(target)
	if os.IsNotExist(err) {
		return Finding{Path: rel, Status: StatusMissing}
	}
	if err != nil {
		return Finding{Path: rel, Status: StatusUnreadable, Detail: err.Error()}
	}

	if strings.HasSuffix(rel, ".json") && !ValidJSONC(got) {
		return Finding{Path: rel, Status: StatusInvalidJSON, Detail: "not valid JSON with comments"}
	}
	if !bytes.Equal(got, want) {
		return Finding{Path: rel, Status: StatusDiffers, Detail: fmt.Sprintf("%d bytes, template has %d", len(got), len(want))}
	}
	return Finding{Path: rel, Status: StatusOK}
}

// ValidJSONC reports whether data is valid JSON once comments and trailing
// commas are stripped, the dialect VS Code accepts in its settings files.
func ValidJSONC(data []byte) bool {
	return json.Valid(jsonc.ToJSON(data))
}
