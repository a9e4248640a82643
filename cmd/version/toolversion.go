/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// ToolVersion is pcresolve's own release version, reported by --version and
// tested against --atleast-pkgconfig-version. Unlike an arbitrary module's
// version string (compared by Compare above), the tool's own version is
// semver-shaped, so golang.org/x/mod/semver is the right fit here.
var ToolVersion = "0.29.2"

// AtLeastToolVersion reports whether pcresolve's own version is at least
// want, per semver precedence.
func AtLeastToolVersion(want string) bool {
	return semver.Compare(canonical(ToolVersion), canonical(want)) >= 0
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
