// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/J-sephB-lt-n/logsetup/internal/config"
)

func TestRunCmdErrors(t *testing.T) {
	t.Parallel()

	missingJob := filepath.Join("testdata", "missing.yaml")
	testCases := map[string]struct {
		args                 []string
		expectedError        error
		expectedErrorMessage string
		expectedUsage        bool
	}{
		"unknown source, error returned and usage output": {
			args:                 []string{"crm"},
			expectedError:        errInvalidSource,
			expectedErrorMessage: fmt.Sprintf("%s: crm\n", errInvalidSource),
			expectedUsage:        true,
		},
		"source not in the job file, error returned and usage output": {
			args:                 []string{"mobile_events", "--" + jobFileFlagName, filepath.Join("testdata", "job.yaml")},
			expectedError:        errInvalidSource,
			expectedErrorMessage: fmt.Sprintf("%s: mobile_events\n", errInvalidSource),
			expectedUsage:        true,
		},
		"negative delay, error returned and usage output": {
			args:                 []string{"--" + maxDelayFlagName + "=-1s"},
			expectedError:        errNegativeDelay,
			expectedErrorMessage: fmt.Sprintf("%s: -1s\n", errNegativeDelay),
			expectedUsage:        true,
		},
		"missing job file, error returned no usage output": {
			args:                 []string{"--" + jobFileFlagName, missingJob},
			expectedError:        syscall.ENOENT,
			expectedErrorMessage: fmt.Sprintf("open %s: %s\n", missingJob, syscall.ENOENT),
		},
		"invalid job file, error returned no usage output": {
			args:          []string{"-" + jobFileFlagShort, filepath.Join("testdata", "invalid.yaml")},
			expectedError: config.ErrParsing,
			expectedErrorMessage: fmt.Sprintf("%s %q: %s\n", config.ErrParsing, filepath.Join("testdata", "invalid.yaml"),
				"yaml: found character that cannot start any token"),
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			cmd := RunCmd()
			errBuffer := new(bytes.Buffer)
			outBuffer := new(bytes.Buffer)
			cmd.SetOut(outBuffer)
			cmd.SetErr(errBuffer)
			cmd.SetUsageTemplate("usage string")
			cmd.SetArgs(test.args)

			err := cmd.ExecuteContext(t.Context())
			assert.ErrorIs(t, err, test.expectedError)
			assert.Equal(t, test.expectedErrorMessage, errBuffer.String())

			if test.expectedUsage {
				assert.Equal(t, "usage string", outBuffer.String())
			} else {
				assert.Empty(t, outBuffer)
			}
		})
	}
}

func TestRunCmd(t *testing.T) {
	t.Parallel()

	metricsPath := filepath.Join(t.TempDir(), "elt.prom")
	cmd, logBuffer, errBuffer := testCommand(t)
	cmd.SetArgs([]string{"--" + maxDelayFlagName, "0s", "--" + metricsFileFlagName, metricsPath})

	require.NoError(t, cmd.ExecuteContext(testContext(t, logBuffer)))
	assert.Empty(t, errBuffer)

	logs := logBuffer.String()
	assert.Contains(t, logs, "Started section 'Daily ELT process'")
	assert.Contains(t, logs, "Finished section 'Extract'")
	assert.Contains(t, logs, "Finished section 'Daily ELT process'")
	assert.Contains(t, logs, `"runId":`)
	assert.Contains(t, logs, `"source":"mobile_events"`)

	content, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `logsetup_sections_finished_total{section="Daily ELT process"} 1`)
	assert.Contains(t, string(content), `logsetup_sections_finished_total{section="Extract"} 1`)
}

func TestRunCmdSelectedSources(t *testing.T) {
	t.Parallel()

	cmd, logBuffer, _ := testCommand(t)
	cmd.SetArgs([]string{"web_events", "--" + jobFileFlagName, filepath.Join("testdata", "job.yaml")})

	require.NoError(t, cmd.ExecuteContext(testContext(t, logBuffer)))

	logs := logBuffer.String()
	assert.Contains(t, logs, `"source":"web_events"`)
	assert.NotContains(t, logs, `"source":"pos_system"`)
	assert.Contains(t, logs, "Finished section 'Daily ELT process'")
}

func TestRunCmdMetricsExportError(t *testing.T) {
	t.Parallel()

	metricsPath := filepath.Join(t.TempDir(), "missing", "elt.prom")
	cmd, logBuffer, errBuffer := testCommand(t)
	cmd.SetArgs([]string{"--" + maxDelayFlagName, "0s", "--" + metricsFileFlagName, metricsPath})

	err := cmd.ExecuteContext(testContext(t, logBuffer))
	require.ErrorIs(t, err, errMetricsExport)
	assert.Contains(t, errBuffer.String(), metricsPath)
	assert.Contains(t, logBuffer.String(), "Finished section 'Daily ELT process'", "the run completes before the export")
}

func TestRunCmdEnvironment(t *testing.T) {
	metricsPath := filepath.Join(t.TempDir(), "env.prom")
	t.Setenv("ELT_JOB_FILE", filepath.Join("testdata", "job.yaml"))
	t.Setenv("ELT_MAX_EXTRACT_DELAY", "0s")
	t.Setenv("METRICS_TEXTFILE", metricsPath)

	cmd, logBuffer, _ := testCommand(t)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(testContext(t, logBuffer)))
	assert.Contains(t, logBuffer.String(), `"source":"pos_system"`)
	assert.FileExists(t, metricsPath)

	t.Setenv("ELT_MAX_EXTRACT_DELAY", "-1s")
	cmd, logBuffer, errBuffer := testCommand(t)
	cmd.SetArgs([]string{})
	err := cmd.ExecuteContext(testContext(t, logBuffer))
	require.ErrorIs(t, err, config.ErrEnvVariablesNotValid)
	assert.Contains(t, errBuffer.String(), "ELT_MAX_EXTRACT_DELAY cannot be negative")
}

func TestValidArgsFunc(t *testing.T) {
	t.Parallel()

	completion := validArgsFunc([]string{"mobile_events", "pos_system", "web_events"})

	comps, directive := completion(RunCmd(), []string{}, "")
	assert.Equal(t, []string{"mobile_events", "pos_system", "web_events"}, comps)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	comps, _ = completion(RunCmd(), []string{"pos_system"}, "")
	assert.Equal(t, []string{"mobile_events", "web_events"}, comps)

	comps, _ = completion(RunCmd(), []string{}, "w")
	assert.Equal(t, []string{"web_events"}, comps)
}

func testCommand(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	cmd := RunCmd()
	errBuffer := new(bytes.Buffer)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(errBuffer)
	return cmd, new(bytes.Buffer), errBuffer
}
