/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

// Package requirement parses the "Requires"/"Requires.private" grammar: a
// whitespace- or comma-separated list of module names, each optionally
// followed by a relational operator and a version.
package requirement

import (
	"fmt"
	"unicode"

	errs "github.com/cbuildtools/pcresolve/cmd/errors"
	"github.com/cbuildtools/pcresolve/cmd/version"
)

// RequiredVersion is one entry of a requirement list: the name of the
// required module, the relational operator to test its version with, and
// the version to test against (empty when Comparison is AlwaysMatch).
type RequiredVersion struct {
	Name       string
	Comparison version.Comparison
	Version    string
}

func (r RequiredVersion) String() string {
	if r.Comparison == version.AlwaysMatch {
		return r.Name
	}
	return fmt.Sprintf("%s %s %s", r.Name, r.Comparison, r.Version)
}

var comparisonOps = []string{"<=", ">=", "==", "!=", "<", ">", "="}

var opToComparison = map[string]version.Comparison{
	"=":  version.Equal,
	"==": version.Equal,
	"!=": version.NotEqual,
	"<":  version.LessThan,
	"<=": version.LessEqual,
	">":  version.GreaterThan,
	">=": version.GreaterEqual,
}

func isNameRune(r rune, i int) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '+' || r == '-'
}

func isVersionRune(r rune, i int) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '+' || r == '-'
}

// Parse parses a requirement-list string such as "foo >= 1.2, bar" or
// "foo>=1.2 bar" into its list of RequiredVersion entries.
func Parse(s string) ([]RequiredVersion, error) {
	p := &parser{s: s}
	p.skipSeparators()

	var out []RequiredVersion
	for p.peekRune() != eof {
		rv, err := parseOne(p)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
		p.skipSeparators()
	}

	return out, nil
}

func parseOne(p *parser) (RequiredVersion, error) {
	name := p.expectFunc(isNameRune)
	if name == "" {
		return RequiredVersion{}, fmt.Errorf("%w: expected module name, got %q", errs.ErrBadRequirement, remainder(p))
	}

	// Whitespace between the name and an operator is optional on either
	// side, but a comma or end of input here means this entry has no
	// version constraint at all.
	mark := p.pos
	p.skipHorizontalSpace()

	op := p.expect(comparisonOps...)
	if op == "" {
		p.pos = mark
		return RequiredVersion{Name: name, Comparison: version.AlwaysMatch}, nil
	}

	p.skipHorizontalSpace()
	ver := p.expectFunc(isVersionRune)
	if ver == "" {
		return RequiredVersion{}, fmt.Errorf("%w: expected version after %q in requirement for %q", errs.ErrBadRequirement, op, name)
	}

	return RequiredVersion{Name: name, Comparison: opToComparison[op], Version: ver}, nil
}

func remainder(p *parser) string {
	if p.pos >= len(p.s) {
		return ""
	}
	return p.s[p.pos:]
}
