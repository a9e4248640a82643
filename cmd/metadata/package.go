/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

// Package metadata implements C2: reading one metadata (".pc") file,
// extracting its variables and property lists, and performing variable
// substitution and flag tokenization.
package metadata

import "github.com/cbuildtools/pcresolve/cmd/requirement"

// Package is one parsed metadata file.
type Package struct {
	// Key is the module name this package was looked up under, not
	// necessarily Name (which is the human title from the file).
	Key string

	Name        string
	Description string
	Version     string
	URL         string

	// PcFileDir is the directory containing the source metadata file.
	// Empty only for packages synthesized in tests.
	PcFileDir string

	// Uninstalled is true when this record was loaded from a
	// "-uninstalled.pc" variant file.
	Uninstalled bool

	Cflags        []Fragment
	CflagsPrivate []Fragment
	Libs          []Fragment
	LibsPrivate   []Fragment

	Requires        []requirement.RequiredVersion
	RequiresPrivate []requirement.RequiredVersion

	// Variables is this package's own variable environment, keyed by
	// name, holding each variable's raw (unexpanded) text. Substitution
	// happens lazily, when a property or the Variable accessor below
	// resolves a value.
	Variables map[string]string

	// file is the source path, used only to annotate error messages.
	file string

	// rawProps holds each property line's name and unexpanded value, in
	// file order, collected by ReadRaw and consumed by ExpandProperties.
	rawProps []rawProperty
}

// Variable looks up and fully expands name, consulting global before the
// package's own variables, matching the substitution lookup order used
// while parsing property values.
func (p *Package) Variable(name string, global map[string]string) (string, bool) {
	raw, ok := lookup(name, global, p.Variables)
	if !ok {
		return "", false
	}

	budget := maxSubstitutions
	expanded, err := expand(raw, global, p.Variables, p.file, &budget)
	if err != nil {
		return "", false
	}
	return expanded, true
}
