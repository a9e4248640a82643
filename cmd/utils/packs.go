/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// modulePattern specifies a regular expression that matches module names as
// they appear on the command line or inside a Requires property: letters,
// digits, and the handful of punctuation characters real-world metadata
// files use in practice (e.g. "gtk+-3.0", "lib_foo").
var modulePattern = `[A-Za-z0-9_.+-]+`

// moduleNameRegex has a pre-compiled modulePattern ready for use.
var moduleNameRegex = regexp.MustCompile(fmt.Sprintf("^%s$", modulePattern))

// IsModuleNameValid checks whether a module name string matches the
// characters a metadata file name is allowed to use.
func IsModuleNameValid(name string) bool {
	return moduleNameRegex.MatchString(name)
}

// SplitSearchPath splits a PATH-style environment variable value into its
// constituent directories using the platform path list separator (':' on
// unix, ';' on windows).
func SplitSearchPath(value string) []string {
	if value == "" {
		return nil
	}

	dirs := []string{}
	for _, dir := range filepath.SplitList(value) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
