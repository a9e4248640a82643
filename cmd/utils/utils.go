/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package utils

import (
	"os"

	"golang.org/x/term"
)

// FileExists checks if filePath is an actual file in the local file system.
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false
	}
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if dirPath is an actual directory in the local file system.
func DirExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsTerminalInteractive reports whether stdout is attached to an interactive
// terminal. It gates whether the module browser may open its gocui window
// and whether registry scans render a progress bar.
func IsTerminalInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

