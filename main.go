/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package main

import (
	"os"

	"github.com/cbuildtools/pcresolve/cmd/commands"
)

func main() {
	cmd := commands.NewCli()
	err := cmd.Execute()
	if err != nil {
		commands.ReportError(err)
		os.Exit(1)
	}
}
