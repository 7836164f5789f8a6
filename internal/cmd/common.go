// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var (
	errInvalidSource = errors.New("source not available in the job")
	errNegativeDelay = errors.New("maximum delay cannot be negative")
	errMetricsExport = errors.New("exporting metrics")
)

// handleError will do custom print error handling based on the type of error received
// and return the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errInvalidSource), errors.Is(err, errNegativeDelay):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

func validArgsFunc(sources []string) cobra.CompletionFunc {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var comps []string
		for _, name := range sources {
			if strings.HasPrefix(name, toComplete) && !slices.Contains(args, name) {
				comps = append(comps, name)
			}
		}

		return comps, cobra.ShellCompDirectiveNoFileComp
	}
}
