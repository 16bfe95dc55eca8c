package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/magflow/internal/hcl_adapter"
	"github.com/specialistvlad/magflow/internal/testutil"
	"github.com/stretchr/testify/require"
)

// SetupAppTest creates an App for system testing. It logs at debug level into
// the returned buffer, writes into a temporary output directory unless cfg
// names one, and exposes an empty environment to pipeline files.
func SetupAppTest(t *testing.T, cfg Config, opts ...Option) (*App, *testutil.SafeBuffer) {
	t.Helper()

	defaults := DefaultConfig()
	if cfg.OutputDir == "" {
		cfg.OutputDir = t.TempDir()
	}
	if cfg.WorkflowFile == "" {
		cfg.WorkflowFile = defaults.WorkflowFile
	}
	if cfg.WorkflowName == "" {
		cfg.WorkflowName = defaults.WorkflowName
	}
	if cfg.ExecutionSite == "" {
		cfg.ExecutionSite = defaults.ExecutionSite
	}
	if cfg.ContainerImage == "" {
		cfg.ContainerImage = defaults.ContainerImage
	}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"

	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}
	testApp := NewApp(logBuffer, validated, hcl_adapter.NewLoaderWithEnv(nil), opts...)

	t.Cleanup(func() {
		if os.Getenv(testutil.LogsEnv) == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
