// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/J-sephB-lt-n/logsetup/internal/elt"
)

const (
	runCmdUsageTemplate = "run [%s]..."
	runCmdShort         = "run the daily ELT process"
	runCmdLong          = `Run the daily ELT process.
	The process extracts every configured data source for the previous UTC day,
	logging the runtime of the whole process and of the extraction step.

	Sources can be restricted by passing their names as arguments, by default
	every source of the job file is extracted. Without a job file the available
	sources are extracted in their default order.`

	runCmdExample = `# Run the default job
	logsetup run

	# Run only the POS system extraction of a custom job, exporting the timings
	logsetup run pos_system --job-file job.yaml --metrics-file /var/lib/node_exporter/elt.prom`
)

// RunCmd returns the Cobra command that runs the daily ELT process.
func RunCmd() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:     fmt.Sprintf(runCmdUsageTemplate, strings.Join(elt.KnownSources(), "|")),
		Short:   heredoc.Doc(runCmdShort),
		Long:    heredoc.Doc(runCmdLong),
		Example: heredoc.Doc(runCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: validArgsFunc(elt.KnownSources()),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
