/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package browse

import (
	"fmt"

	errs "github.com/cbuildtools/pcresolve/cmd/errors"
	"github.com/cbuildtools/pcresolve/cmd/registry"
	"github.com/cbuildtools/pcresolve/cmd/utils"
	"github.com/spf13/cobra"
)

// Cmd is the "pcresolve browse [module]" subcommand, wired onto the root
// command by cmd/commands. It is refused on a non-interactive terminal
// since the gocui window has nowhere to render.
var Cmd = &cobra.Command{
	Use:           "browse [module]",
	Short:         "Interactively browse modules found on the search path",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runBrowse,
}

// BuildRegistry is set by cmd/commands to its own buildRegistry, so this
// package reuses the exact same search-path/global-env construction the
// flag-emitting queries use instead of duplicating it.
var BuildRegistry func() *registry.Registry

func runBrowse(cmd *cobra.Command, args []string) error {
	if !utils.IsTerminalInteractive() {
		return fmt.Errorf("%w: browse requires an interactive terminal", errs.ErrBadOption)
	}
	if BuildRegistry == nil {
		return fmt.Errorf("%w: browse command not wired to a registry", errs.ErrBadOption)
	}

	var preselect string
	if len(args) == 1 {
		preselect = args[0]
	}

	r := BuildRegistry()
	return Run(r, preselect)
}
