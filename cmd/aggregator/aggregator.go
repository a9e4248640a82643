/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

// Package aggregator implements C5: walking a resolved package closure to
// produce deduplicated, order-preserving flag sequences for each CLI
// query kind.
package aggregator

import (
	"strings"

	"github.com/cbuildtools/pcresolve/cmd/metadata"
	"github.com/cbuildtools/pcresolve/cmd/resolver"
)

// Options controls how a query is rendered.
type Options struct {
	// Static includes each package's private fragments (cflags_private,
	// libs_private) alongside its public ones, as when linking
	// statically.
	Static bool

	// MSVCSyntax rewrites "-lfoo" to "foo.lib" and "-L/dir" to
	// "/libpath:/dir".
	MSVCSyntax bool
}

// Kind selects which fragment kinds a query includes.
type Kind int

const (
	KindCflags Kind = iota
	KindCflagsOnlyInclude
	KindCflagsOnlyOther
	KindLibs
	KindLibsOnlyL
	KindLibsOnlyDir
	KindLibsOnlyOther
)

func (k Kind) isCflagsKind() bool {
	return k == KindCflags || k == KindCflagsOnlyInclude || k == KindCflagsOnlyOther
}

// Render walks res.Packages and produces the space-joined flag line for
// kind.
func Render(res *resolver.Result, kind Kind, opt Options) string {
	var tokens []string

	if kind.isCflagsKind() {
		tokens = renderCflags(res, kind, opt)
	} else {
		tokens = renderLibs(res, kind, opt)
	}

	return strings.Join(tokens, " ")
}

func renderCflags(res *resolver.Result, kind Kind, opt Options) []string {
	seen := map[string]bool{}
	var out []string

	for _, pkg := range res.Packages {
		// A package reached only through a Requires.private edge
		// contributes nothing to a non-static query, the same as its
		// own Cflags.private would.
		if res.Private[pkg] && !opt.Static {
			continue
		}
		out = appendFiltered(out, seen, pkg.Cflags, kind)
		if opt.Static || res.Private[pkg] {
			out = appendFiltered(out, seen, pkg.CflagsPrivate, kind)
		}
	}

	return out
}

func renderLibs(res *resolver.Result, kind Kind, opt Options) []string {
	seenDedup := map[string]bool{}
	var out []string

	for _, pkg := range res.Packages {
		// A package reached only through a Requires.private edge
		// contributes nothing to a non-static query, the same as its
		// own Libs.private would.
		if res.Private[pkg] && !opt.Static {
			continue
		}
		out = appendLibFragments(out, seenDedup, pkg.Libs, kind, opt)
		if opt.Static || res.Private[pkg] {
			out = appendLibFragments(out, seenDedup, pkg.LibsPrivate, kind, opt)
		}
	}

	return out
}

// appendFiltered appends frags matching kind's fragment-kind filter to
// out, deduplicating by exact text (used for cflags, where every
// included kind dedups globally).
func appendFiltered(out []string, seen map[string]bool, frags []metadata.Fragment, kind Kind) []string {
	for _, f := range frags {
		if !cflagsKindMatches(kind, f.Kind) {
			continue
		}
		if seen[f.Text] {
			continue
		}
		seen[f.Text] = true
		out = append(out, f.Text)
	}
	return out
}

func cflagsKindMatches(kind Kind, fk metadata.FragmentKind) bool {
	switch kind {
	case KindCflagsOnlyInclude:
		return fk == metadata.INCLUDE_DIR
	case KindCflagsOnlyOther:
		return fk == metadata.OTHER
	default: // KindCflags
		return fk == metadata.INCLUDE_DIR || fk == metadata.OTHER
	}
}

// appendLibFragments appends frags matching kind's filter to out. LIB
// fragments are never deduplicated (two distinct libraries may each
// legitimately need "-lfoo" when symbols are circularly referenced);
// INCLUDE_DIR/LIB_DIR/OTHER dedup by exact text, as cflags does.
func appendLibFragments(out []string, seen map[string]bool, frags []metadata.Fragment, kind Kind, opt Options) []string {
	for _, f := range frags {
		if !libsKindMatches(kind, f.Kind) {
			continue
		}

		text := f.Text
		if opt.MSVCSyntax {
			text = toMSVC(f)
		}

		if f.Kind != metadata.LIB {
			if seen[text] {
				continue
			}
			seen[text] = true
		}

		out = append(out, text)
	}
	return out
}

func libsKindMatches(kind Kind, fk metadata.FragmentKind) bool {
	switch kind {
	case KindLibsOnlyL:
		return fk == metadata.LIB
	case KindLibsOnlyDir:
		return fk == metadata.LIB_DIR
	case KindLibsOnlyOther:
		return fk == metadata.OTHER
	default: // KindLibs
		return fk == metadata.LIB || fk == metadata.LIB_DIR || fk == metadata.OTHER
	}
}

// toMSVC rewrites a LIB or LIB_DIR fragment's text into its MSVC
// equivalent; other kinds pass through unchanged.
func toMSVC(f metadata.Fragment) string {
	switch f.Kind {
	case metadata.LIB:
		return strings.TrimPrefix(f.Text, "-l") + ".lib"
	case metadata.LIB_DIR:
		return "/libpath:" + strings.TrimPrefix(f.Text, "-L")
	default:
		return f.Text
	}
}

// Variable looks up name in the first package of res.Packages, with
// global entries shadowing the package's own variables (the same order
// substitution uses); with no packages, only global is consulted.
// Looking only at the first package when multiple modules were
// requested matches the upstream tool's own (likely unintentional)
// behavior; see the open question this preserves.
func Variable(res *resolver.Result, name string, global map[string]string) (string, bool) {
	if len(res.Packages) == 0 {
		v, ok := global[name]
		return v, ok
	}
	return res.Packages[0].Variable(name, global)
}
