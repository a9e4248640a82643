/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package registry

import (
	"os"

	"github.com/cbuildtools/pcresolve/cmd/utils"
)

// DefaultSearchDirs is the compiled-in fallback search path, consulted
// after every other source. Directories named by the search-path
// environment variable (PKGCONF_PATH for the CLI) are searched before
// these; these are the conventional *nix locations.
var DefaultSearchDirs = []string{
	"/usr/lib/pkgconfig",
	"/usr/share/pkgconfig",
	"/usr/local/lib/pkgconfig",
	"/usr/local/share/pkgconfig",
}

// BuildSearchPath assembles the ordered directory list C3 searches: any
// --define-side additions first, then pathEnv's value split on the
// platform list separator, then DefaultSearchDirs.
func BuildSearchPath(extra []string, pathEnv string) []string {
	var dirs []string
	dirs = append(dirs, extra...)
	dirs = append(dirs, utils.SplitSearchPath(os.Getenv(pathEnv))...)
	dirs = append(dirs, DefaultSearchDirs...)
	return dirs
}
