// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> extension -> service -> store -> SQLite. Each
// test builds the binary once and runs it in a fresh directory with its own
// HOME, so config and the audit log never touch the real user's files.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the darc binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "darc-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "darc"
		if os.PathSeparator == '\\' {
			binaryName = "darc.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	user   string
	binary string
}

// newTestEnv creates a temporary directory with an initialised catalog.
// Commands run as "tester" unless user is changed.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init")
	return env
}

// newBareEnv is newTestEnv without running init.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		user:   "tester",
		binary: buildBinary(t),
	}
}

// command builds an exec.Cmd with the isolated environment.
func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home, "DARC_USER="+e.user, "DARC_DB=", "DARC_DIR=")
	return cmd
}

// run executes darc with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("darc %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes darc and returns output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes darc with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("darc %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// write creates a file under the test directory.
func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	p := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
	return p
}

// seed imports testManifest along with the scan it references.
func (e *testEnv) seed() {
	e.t.Helper()
	e.write("scans/mary.pdf", "%PDF-1.4\n%fixture\n")
	e.write("catalog.yaml", testManifest)
	e.run("import", "catalog.yaml")
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// testManifest is a small archive: a collection tree, a term tree, three
// documents and a scanned file.
const testManifest = `collections:
  - name: Archive
    description: Family papers
  - name: Letters
    parent: archive
  - name: Maps
    related: [letters]
terms:
  - name: Places
  - name: Paris
    parent: places
documents:
  - title: Letter to Mary
    collections: [letters]
    terms: [paris]
    metadata:
      - "<x:xmpmeta/>"
    files:
      - path: scans/mary.pdf
        format: scanned
        source_url: https://example.org/mary
  - title: Map of Paris
    collections: [maps]
    terms: [paris]
    related: [letter-to-mary]
  - title: Letter to John
    collections: [letters]
`
