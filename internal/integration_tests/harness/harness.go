// Package harness runs the full command line against files in a temporary
// directory, the way cmd/cli does, for the integration tests.
package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/specialistvlad/magflow/internal/app"
	"github.com/specialistvlad/magflow/internal/cli"
	"github.com/specialistvlad/magflow/internal/hcl_adapter"
	"github.com/specialistvlad/magflow/internal/testutil"
	"github.com/specialistvlad/magflow/internal/workflow"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// DirPlaceholder is replaced by the test directory.
const DirPlaceholder = "$DIR"

// Result is the outcome of one run.
type Result struct {
	Err    error
	Output string
	// Dir holds the test files; OutDir the generated ones.
	Dir    string
	OutDir string
	Run    *app.Result
}

// Run writes files into a fresh directory and executes args. DirPlaceholder
// is expanded in both file contents and args. Unless args say otherwise,
// output goes to <dir>/out and logs are at debug level.
func Run(t *testing.T, files map[string]string, args ...string) *Result {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		content = strings.ReplaceAll(content, DirPlaceholder, dir)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	res := &Result{Dir: dir, OutDir: filepath.Join(dir, "out")}

	args = slices.Clone(args)
	for i, a := range args {
		args[i] = strings.ReplaceAll(a, DirPlaceholder, dir)
	}
	if !slices.Contains(args, "--output-dir") {
		args = append(args, "--output-dir", res.OutDir)
	}
	if !slices.Contains(args, "--log-level") {
		args = append(args, "--log-level", "debug")
	}

	out := &testutil.SafeBuffer{}
	res.Run, res.Err = execute(out, args)
	res.Output = out.String()

	t.Cleanup(func() {
		if os.Getenv(testutil.LogsEnv) == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), res.Output)
		}
	})
	return res
}

func execute(out *testutil.SafeBuffer, args []string) (result *app.Result, err error) {
	inv, shouldExit, err := cli.Parse(args, out)
	if err != nil || shouldExit {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked | %v", r)
		}
	}()

	ctx := context.Background()
	a := app.NewApp(out, inv.Config, hcl_adapter.NewLoaderWithEnv(inv.Environ))
	defer a.Close(ctx)

	if inv.Command == cli.Describe {
		return nil, a.Describe(ctx)
	}
	return a.Run(ctx)
}

// Workflow reads the generated workflow document.
func (r *Result) Workflow(t *testing.T) workflow.Document {
	t.Helper()
	require.NoError(t, r.Err)
	require.NotNil(t, r.Run)

	raw, err := os.ReadFile(r.Run.Workflow)
	require.NoError(t, err)
	var doc workflow.Document
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	return doc
}

// Job returns the job with the given id from doc.
func Job(t *testing.T, doc workflow.Document, id string) workflow.JobDoc {
	t.Helper()
	for _, j := range doc.Jobs {
		if j.ID == id {
			return j
		}
	}
	require.Failf(t, "job not found", "job %s is not in the workflow", id)
	return workflow.JobDoc{}
}

// Parents returns the parents recorded for a job, nil for roots.
func Parents(doc workflow.Document, id string) []string {
	for _, d := range doc.Dependencies {
		if d.Job == id {
			return d.Parents
		}
	}
	return nil
}
