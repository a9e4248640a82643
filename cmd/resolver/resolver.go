/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

// Package resolver implements C4: given a seed list of required modules,
// it produces the transitive closure of their Requires/Requires.private
// graphs in resolver order, detecting version mismatches and tolerating
// cycles.
package resolver

import (
	"fmt"

	errs "github.com/cbuildtools/pcresolve/cmd/errors"
	"github.com/cbuildtools/pcresolve/cmd/metadata"
	"github.com/cbuildtools/pcresolve/cmd/requirement"
	"github.com/cbuildtools/pcresolve/cmd/version"
)

// Loader fetches a module's parsed Package by name, matching
// *registry.Registry's Load method. Declared here as an interface so the
// resolver stays decoupled from the registry's search-path machinery.
type Loader interface {
	Load(name string) (*metadata.Package, error)
}

// Result is the outcome of resolving a seed list: the resolved closure in
// resolver order, and the subset of it reached only through a
// Requires.private edge (directly or transitively) — the set C5 consults
// to decide whether libs_private/cflags_private contribute to a query.
type Result struct {
	Packages []*metadata.Package
	Private  map[*metadata.Package]bool
}

// queueEntry is one pending requirement to fetch and, on first
// discovery, expand.
type queueEntry struct {
	rv      requirement.RequiredVersion
	private bool
}

// Resolve processes seed breadth-first: every entry at one level is
// fetched and added to the result before any package of the next level
// is fetched, so a diamond (A requires B, C; B and C both require D)
// resolves to A, B, C, D rather than A, B, D, C. Re-encountering an
// already-visited package (a cycle, or the second arm of a diamond) does
// not add it again — its position is decided by whichever occurrence is
// dequeued first. A package first reached through Requires.private stops
// being private once a public occurrence of it is dequeued, and its own
// Requires are then revisited as public.
func Resolve(seed []requirement.RequiredVersion, loader Loader) (*Result, error) {
	res := &Result{Private: map[*metadata.Package]bool{}}
	visited := map[*metadata.Package]bool{}

	var queue []queueEntry
	for _, rv := range seed {
		queue = append(queue, queueEntry{rv: rv})
	}

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		pkg, err := fetchAndCheck(entry.rv, loader)
		if err != nil {
			return nil, err
		}

		if visited[pkg] {
			if !entry.private && res.Private[pkg] {
				delete(res.Private, pkg)
				for _, req := range pkg.Requires {
					queue = append(queue, queueEntry{rv: req})
				}
			}
			continue
		}
		visited[pkg] = true

		res.Packages = append(res.Packages, pkg)
		if entry.private {
			res.Private[pkg] = true
		}

		for _, req := range pkg.Requires {
			queue = append(queue, queueEntry{rv: req, private: entry.private})
		}
		for _, req := range pkg.RequiresPrivate {
			queue = append(queue, queueEntry{rv: req, private: true})
		}
	}

	return res, nil
}

func fetchAndCheck(rv requirement.RequiredVersion, loader Loader) (*metadata.Package, error) {
	pkg, err := loader.Load(rv.Name)
	if err != nil {
		return nil, err
	}

	if err := pkg.Validate(); err != nil {
		return nil, err
	}

	if rv.Comparison != version.AlwaysMatch && !version.Test(rv.Comparison, pkg.Version, rv.Version) {
		msg := fmt.Sprintf("Requested '%s %s %s' but version of %s is %s", rv.Name, rv.Comparison, rv.Version, rv.Name, pkg.Version)
		if pkg.URL != "" {
			msg += fmt.Sprintf("\nYou may find new versions of %s at %s", rv.Name, pkg.URL)
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrVersionMismatch, msg)
	}

	return pkg, nil
}
