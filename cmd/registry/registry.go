/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	errs "github.com/cbuildtools/pcresolve/cmd/errors"
	"github.com/cbuildtools/pcresolve/cmd/metadata"
	"github.com/cbuildtools/pcresolve/cmd/utils"
	"github.com/schollz/progressbar/v3"
)

// Registry is C3: it maps a module name to its parsed metadata.Package,
// caching each by key so a name is loaded and parsed at most once.
type Registry struct {
	SearchDirs []string
	Global     GlobalEnv

	// DisableUninstalled skips the "<name>-uninstalled.pc" preference
	// (PKGCONF_DISABLE_UNINSTALLED).
	DisableUninstalled bool

	// RewritePrefix enables the per-package prefix variable override:
	// when the file defines a variable named PrefixVariable, replace it
	// with the directory two levels above the file's own directory.
	RewritePrefix bool

	// PrefixVariable names the variable RewritePrefix rewrites. Defaults
	// to "prefix" when left empty.
	PrefixVariable string

	// ShowProgress renders a progress bar while ListAll scans every
	// search directory; only meaningful on an interactive terminal.
	ShowProgress bool

	cache map[string]*metadata.Package
}

// New builds a Registry ready to load packages.
func New(searchDirs []string, global GlobalEnv) *Registry {
	return &Registry{
		SearchDirs: searchDirs,
		Global:     global,
		cache:      map[string]*metadata.Package{},
	}
}

// Load resolves module name key to a *metadata.Package, per C3 §4.3:
// return a cached hit; else prefer "<key>-uninstalled.pc"; else
// "<key>.pc" across SearchDirs; else, if key itself names a ".pc" file
// on disk, open it directly; else fail with ErrNotFound.
func (r *Registry) Load(key string) (*metadata.Package, error) {
	if pkg, ok := r.cache[key]; ok {
		return pkg, nil
	}

	if !r.DisableUninstalled {
		if path, ok := r.find(key + "-uninstalled.pc"); ok {
			pkg, err := r.load(path, key, true)
			if err != nil {
				return nil, err
			}
			return pkg, nil
		}
	}

	if path, ok := r.find(key + ".pc"); ok {
		pkg, err := r.load(path, key, false)
		if err != nil {
			return nil, err
		}
		return pkg, nil
	}

	if strings.HasSuffix(key, ".pc") && utils.FileExists(key) {
		pkg, err := r.load(key, key, false)
		if err != nil {
			return nil, err
		}
		return pkg, nil
	}

	return nil, fmt.Errorf("%w: %q", errs.ErrNotFound, key)
}

func (r *Registry) find(filename string) (string, bool) {
	for _, dir := range r.SearchDirs {
		path := filepath.Join(dir, filename)
		if utils.FileExists(path) {
			return path, true
		}
	}
	return "", false
}

func (r *Registry) load(path, key string, uninstalled bool) (*metadata.Package, error) {
	pkg, err := metadata.ReadRaw(path)
	if err != nil {
		return nil, err
	}

	if r.RewritePrefix {
		name := r.PrefixVariable
		if name == "" {
			name = "prefix"
		}
		if _, ok := pkg.Variables[name]; ok {
			pkg.Variables[name] = computedPrefix(path)
		}
	}

	if err := pkg.ExpandProperties(r.Global); err != nil {
		return nil, err
	}

	pkg.Key = key
	pkg.Uninstalled = uninstalled
	r.cache[key] = pkg
	return pkg, nil
}

// computedPrefix returns the directory two levels above path's own
// directory: for ".../lib/pkgconfig/foo.pc" that is ".../".
func computedPrefix(path string) string {
	dir := filepath.Dir(path)
	return filepath.Dir(filepath.Dir(dir))
}

// ListEntry is one row of ListAll: a module name and its description,
// extracted without fully resolving the package.
type ListEntry struct {
	Name        string
	Description string
}

// ListAll returns the union, across every search directory, of every
// ".pc" file found, listed under its file name with the Description read
// from it. Each file is parsed in full (variables substituted, flags
// tokenized), and a file that fails to parse is left out of the result.
// When r.ShowProgress is set and stdout is an interactive terminal, a
// progress bar renders scan progress across directories.
func (r *Registry) ListAll() ([]ListEntry, error) {
	var files []string
	for _, dir := range r.SearchDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".pc") {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
	}

	var bar *progressbar.ProgressBar
	if r.ShowProgress && utils.IsTerminalInteractive() {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("scanning packages"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
		)
	}

	seen := map[string]bool{}
	var out []ListEntry
	for _, path := range files {
		if bar != nil {
			_ = bar.Add(1)
		}

		name := strings.TrimSuffix(filepath.Base(path), ".pc")
		name = strings.TrimSuffix(name, "-uninstalled")
		if seen[name] {
			continue
		}
		seen[name] = true

		pkg, err := metadata.Parse(path, r.Global)
		if err != nil {
			continue
		}
		out = append(out, ListEntry{Name: name, Description: pkg.Description})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
