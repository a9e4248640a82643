/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

// Package registry implements C3: mapping a module name to its parsed
// metadata.Package, locating files across a search-path list, and
// memoizing the result so each Package is loaded at most once.
package registry

// GlobalEnv is the process-wide variable environment: entries seeded by
// --define-variable and by environment, which shadow a package's own
// variables during substitution (see metadata.substitute).
type GlobalEnv map[string]string

// NewGlobalEnv builds the default global environment: pc_top_builddir set
// to topBuildDir (the already-resolved value of PKGCONF_TOP_BUILD_DIR),
// defaulting to the literal "$(top_builddir)" placeholder the upstream
// tool uses when that variable is unset.
func NewGlobalEnv(topBuildDir string) GlobalEnv {
	if topBuildDir == "" {
		topBuildDir = "$(top_builddir)"
	}
	return GlobalEnv{"pc_top_builddir": topBuildDir}
}

// Define sets name=value in the global environment, as --define-variable
// does. Later definitions of the same name win.
func (g GlobalEnv) Define(name, value string) {
	g[name] = value
}
