package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/agentkit-dev/agentkit/internal/materialize"
	"github.com/agentkit-dev/agentkit/internal/scaffold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBuild = BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}

var bundledFiles = []string{
	".cursor/.cursorrules",
	".vscode/extensions.json",
	".vscode/settings.json",
	"src/agent_workflow.py",
}

// isolate points the settings directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("AGENTKIT_HOME", home)
	t.Setenv("AGENTKIT_TEMPLATE_DIR", "")
	t.Setenv("AGENTKIT_VERBOSE", "")
	return home
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand(testBuild)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func assertBundledCopied(t *testing.T, dst string) {
	t.Helper()
	bundled := scaffold.Bundled()
	for _, name := range bundledFiles {
		want, err := fs.ReadFile(bundled.FS, name)
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(name)))
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestRootCopiesBundledTemplate(t *testing.T) {
	isolate(t)
	dst := filepath.Join(t.TempDir(), "project")

	stdout, stderr, err := runCLI(t, dst)

	require.NoError(t, err)
	assertBundledCopied(t, dst)
	assert.Equal(t, "✓ Project configuration copied to "+dst+"\n", stdout)
	assert.Empty(t, stderr)
}

func TestRootDefaultsToWorkingDirectory(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	chdir(t, dir)

	_, _, err := runCLI(t)

	require.NoError(t, err)
	assertBundledCopied(t, dir)
}

func TestRootCreatesNestedTarget(t *testing.T) {
	isolate(t)
	base := t.TempDir()

	_, _, err := runCLI(t, filepath.Join(base, "a", "b", "c"))

	require.NoError(t, err)
	assertBundledCopied(t, filepath.Join(base, "a", "b", "c"))
}

func TestRootOverwritesEditedFile(t *testing.T) {
	isolate(t)
	dst := t.TempDir()
	rules := filepath.Join(dst, ".cursor", ".cursorrules")
	require.NoError(t, os.MkdirAll(filepath.Dir(rules), 0o755))
	require.NoError(t, os.WriteFile(rules, []byte("local edits"), 0o644))

	_, _, err := runCLI(t, dst)

	require.NoError(t, err)
	assertBundledCopied(t, dst)
}

func TestRootRunTwice(t *testing.T) {
	isolate(t)
	dst := t.TempDir()

	_, _, err := runCLI(t, dst)
	require.NoError(t, err)
	_, _, err = runCLI(t, dst)
	require.NoError(t, err)

	assertBundledCopied(t, dst)
}

func writeTemplate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".github"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".github", "copilot-instructions.md"), []byte("be brief"), 0o644))
	return dir
}

func TestRootTemplateFlag(t *testing.T) {
	isolate(t)
	tmpl := writeTemplate(t)
	dst := t.TempDir()

	_, _, err := runCLI(t, "--template", tmpl, dst)

	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dst, ".github", "copilot-instructions.md"))
	require.NoError(t, err)
	assert.Equal(t, "be brief", string(data))
	_, err = os.Stat(filepath.Join(dst, ".vscode"))
	assert.True(t, os.IsNotExist(err), "bundled files must not be copied with --template")
}

func TestRootTemplateFromEnv(t *testing.T) {
	isolate(t)
	tmpl := writeTemplate(t)
	t.Setenv("AGENTKIT_TEMPLATE_DIR", tmpl)
	dst := t.TempDir()

	_, _, err := runCLI(t, dst)

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dst, ".github", "copilot-instructions.md"))
	assert.NoError(t, err)
}

func TestRootTemplateFromConfigFile(t *testing.T) {
	home := isolate(t)
	tmpl := writeTemplate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("template_dir: "+tmpl+"\n"), 0o644))
	dst := t.TempDir()

	_, _, err := runCLI(t, dst)

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dst, ".github", "copilot-instructions.md"))
	assert.NoError(t, err)
}

func TestRootMissingTemplate(t *testing.T) {
	isolate(t)
	base := t.TempDir()
	dst := filepath.Join(base, "out")

	_, _, err := runCLI(t, "--template", filepath.Join(base, "gone"), dst)

	require.Error(t, err)
	assert.True(t, errors.Is(err, materialize.ErrSourceMissing), "got %v", err)
	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootTargetIsFile(t *testing.T) {
	isolate(t)
	target := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	_, _, err := runCLI(t, target)

	assert.ErrorIs(t, err, materialize.ErrDestinationWrite)
}

func TestRootDryRunWritesNothing(t *testing.T) {
	isolate(t)
	dst := filepath.Join(t.TempDir(), "project")

	stdout, _, err := runCLI(t, "--dry-run", dst)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Would write 4 file(s):")
	for _, name := range bundledFiles {
		assert.Contains(t, stdout, filepath.Join(dst, filepath.FromSlash(name)))
	}
	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "dry run must not create the target")
}

func TestRootVerboseLogsEachFile(t *testing.T) {
	isolate(t)

	_, stderr, err := runCLI(t, "-v", t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(stderr, "copied file"), stderr)
	assert.Contains(t, stderr, "DEBUG")
}

func TestRootRejectsExtraArgs(t *testing.T) {
	isolate(t)

	_, _, err := runCLI(t, "one", "two")
	assert.Error(t, err)
}

func TestListBundled(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, "list")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Template editor-ai-setup 1.0.0")
	assert.Contains(t, stdout, "Files (4):")
	for _, name := range bundledFiles {
		assert.Contains(t, stdout, "  "+name+"\n")
	}
}

func TestListCustomTemplate(t *testing.T) {
	isolate(t)
	tmpl := writeTemplate(t)

	stdout, _, err := runCLI(t, "list", "--template", tmpl)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Template "+tmpl)
	assert.Contains(t, stdout, "Files (1):")
	assert.Contains(t, stdout, ".github/copilot-instructions.md")
}

func TestDoctorAfterCopy(t *testing.T) {
	isolate(t)
	dst := t.TempDir()
	_, _, err := runCLI(t, dst)
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "doctor", "--strict", dst)

	require.NoError(t, err)
	assert.Contains(t, stdout, "[ OK ] editor-ai-setup 1.0.0 matches the manifest schema")
	assert.Contains(t, stdout, "[ OK ] CLI 1.2.3 satisfies >= 0.1.0")
	assert.Contains(t, stdout, "[ OK ] .vscode/settings.json")
	assert.NotContains(t, stdout, "problem(s)")
}

func TestDoctorReportsDrift(t *testing.T) {
	isolate(t)
	dst := t.TempDir()
	_, _, err := runCLI(t, dst)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dst, "src", "agent_workflow.py"), []byte("# mine\n"), 0o644))
	require.NoError(t, os.RemoveAll(filepath.Join(dst, ".cursor")))

	stdout, _, err := runCLI(t, "doctor", dst)
	require.NoError(t, err, "without --strict drift is only reported")
	assert.Contains(t, stdout, "[DIFF] src/agent_workflow.py")
	assert.Contains(t, stdout, "[MISS] .cursor")
	assert.Contains(t, stdout, "2 problem(s)")

	_, _, err = runCLI(t, "doctor", "--strict", dst)
	assert.Error(t, err)
}

func TestDoctorFlagsSymlinkInTemplate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need developer mode on windows")
	}
	isolate(t)
	tmpl := writeTemplate(t)
	require.NoError(t, os.Symlink("copilot-instructions.md", filepath.Join(tmpl, ".github", "alias.md")))
	dst := t.TempDir()

	_, _, err := runCLI(t, "--template", tmpl, dst)
	require.ErrorIs(t, err, materialize.ErrUnsupportedEntry)

	stdout, _, err := runCLI(t, "doctor", "--template", tmpl, "--strict", dst)
	assert.Error(t, err)
	assert.Contains(t, stdout, "[FAIL] .github/alias.md (template entry is a symlink)")
}

func TestVersion(t *testing.T) {
	isolate(t)

	t.Run("plain", func(t *testing.T) {
		stdout, _, err := runCLI(t, "version")
		require.NoError(t, err)
		assert.Contains(t, stdout, "agentkit version 1.2.3 (commit: abc123, built: 2026-01-01)")
		assert.Contains(t, stdout, "bundled template version 1.0.0")
	})

	t.Run("short", func(t *testing.T) {
		stdout, _, err := runCLI(t, "version", "--short")
		require.NoError(t, err)
		assert.Equal(t, "1.2.3\n", stdout)
	})

	t.Run("json", func(t *testing.T) {
		stdout, _, err := runCLI(t, "version", "--json")
		require.NoError(t, err)

		var info map[string]string
		require.NoError(t, json.Unmarshal([]byte(stdout), &info))
		assert.Equal(t, "1.2.3", info["version"])
		assert.Equal(t, "1.0.0", info["template_version"])
	})
}

func TestConfigSetGet(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, "config", "set", "template_dir", "/srv/templates")
	require.NoError(t, err)
	assert.Equal(t, "Set template_dir = /srv/templates\n", stdout)

	stdout, _, err = runCLI(t, "config", "get", "template_dir")
	require.NoError(t, err)
	assert.Equal(t, "/srv/templates\n", stdout)
}

func TestConfigSetKeepsEnvironmentOut(t *testing.T) {
	home := isolate(t)
	t.Setenv("AGENTKIT_TEMPLATE_DIR", "/tmp/one-off")

	_, _, err := runCLI(t, "config", "set", "verbose", "true")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "one-off")
	assert.NotContains(t, string(data), "template_dir")
}

func TestConfigUnknownKey(t *testing.T) {
	isolate(t)

	_, _, err := runCLI(t, "config", "get", "mirror_url")
	assert.Error(t, err)

	_, _, err = runCLI(t, "config", "set", "mirror_url", "x")
	assert.Error(t, err)
}

func TestPrintErrorPlainOnBuffers(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
