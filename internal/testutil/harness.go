// Package testutil provides the in-process harness the integration tests run
// jobs through: it materializes pipeline and event files in a temporary
// directory, executes the app with a scripted command recorder, and captures
// the full log output.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashkalikava/net-parser/internal/app"
	"github.com/ashkalikava/net-parser/internal/command"
	"github.com/ashkalikava/net-parser/internal/executor"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Job       *executor.JobResult
	Workspace string
}

// RunJobTest runs a complete job in-process. files maps paths relative to the
// test's temporary root (e.g. "pipelines/main.hcl", "workspace/tests/x.txt")
// to their content; eventYAML is the trigger event document; rec scripts and
// records every external command.
func RunJobTest(t *testing.T, files map[string]string, eventYAML string, rec *command.Recorder) *HarnessResult {
	t.Helper()
	return RunJobTestWithConfig(t, files, eventYAML, rec, nil)
}

// RunJobTestWithConfig is RunJobTest with a hook to adjust the app config
// before startup.
func RunJobTestWithConfig(t *testing.T, files map[string]string, eventYAML string, rec *command.Recorder, mutate func(*app.Config)) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	pipelinesDir := filepath.Join(tmpDir, "pipelines")
	workspaceDir := filepath.Join(tmpDir, "workspace")
	require.NoError(t, os.Mkdir(pipelinesDir, 0755))
	require.NoError(t, os.Mkdir(workspaceDir, 0755))

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	eventPath := filepath.Join(tmpDir, "event.yaml")
	require.NoError(t, os.WriteFile(eventPath, []byte(eventYAML), 0644))

	appConfig := &app.Config{
		PipelinePath: pipelinesDir,
		EventPath:    eventPath,
		Workspace:    workspaceDir,
		LogLevel:     "debug",
		LogFormat:    "text",
	}
	if mutate != nil {
		mutate(appConfig)
	}

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, rec)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(context.Background())

	if os.Getenv("NETPARSER_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Job:       testApp.LastJob(),
		Workspace: appConfig.Workspace,
	}
}
