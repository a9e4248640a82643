/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/cbuildtools/pcresolve/cmd/errors"
	"github.com/cbuildtools/pcresolve/cmd/requirement"
	log "github.com/sirupsen/logrus"
)

type rawProperty struct {
	name  string
	value string
}

// Parse reads the metadata file at path and returns its parsed Package.
// global is the process-wide variable environment; its entries shadow the
// file's own variables during substitution.
//
// Parsing is two-pass: ReadRaw first collects every variable and property
// line verbatim (so a variable may be referenced before its definition
// line), then ExpandProperties substitutes and tokenizes each property
// using the complete variable table. Parse is the common-case composition
// of the two; the registry calls them separately so it can rewrite the
// "prefix" variable in between, before any property is expanded.
func Parse(path string, global map[string]string) (*Package, error) {
	p, err := ReadRaw(path)
	if err != nil {
		return nil, err
	}
	if err := p.ExpandProperties(global); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadRaw reads the metadata file at path, populating its variable table
// and stashing each property line's name and unexpanded value without
// substituting or tokenizing it yet.
func ReadRaw(path string) (*Package, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", errs.ErrIOError, path, err)
	}

	p := &Package{
		PcFileDir: filepath.Dir(path),
		Variables: map[string]string{
			"pcfiledir": filepath.Dir(path),
		},
	}

	seen := map[string]bool{}

	for _, line := range joinContinuations(string(raw)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		eq := strings.IndexByte(line, '=')
		colon := strings.IndexByte(line, ':')

		switch {
		case colon >= 0 && (eq < 0 || colon < eq):
			name := strings.TrimSpace(line[:colon])
			value := strings.TrimSpace(line[colon+1:])
			key := strings.ToLower(name)
			if seen[key] {
				return nil, fmt.Errorf("%w: %q in %s", errs.ErrDuplicateProperty, name, path)
			}
			seen[key] = true
			p.rawProps = append(p.rawProps, rawProperty{name: name, value: value})

		case eq >= 0:
			name := strings.TrimSpace(line[:eq])
			value := strings.TrimSpace(line[eq+1:])
			p.Variables[name] = value
		}
	}

	p.file = path
	return p, nil
}

// joinContinuations splits raw into logical lines, joining any physical
// line ending in a trailing backslash with the line that follows it.
func joinContinuations(raw string) []string {
	physical := strings.Split(raw, "\n")

	var out []string
	var cur strings.Builder
	joining := false

	for _, line := range physical {
		line = strings.TrimRight(line, "\r")
		if strings.HasSuffix(line, "\\") {
			cur.WriteString(line[:len(line)-1])
			joining = true
			continue
		}

		if joining {
			cur.WriteString(line)
			out = append(out, cur.String())
			cur.Reset()
			joining = false
		} else {
			out = append(out, line)
		}
	}
	if joining {
		out = append(out, cur.String())
	}

	return out
}

// ExpandProperties substitutes and tokenizes every property line collected
// by ReadRaw, against the package's current variable table and global.
// Called once, after any registry-side variable rewrite (e.g. the prefix
// override) has been applied to p.Variables.
func (p *Package) ExpandProperties(global map[string]string) error {
	for _, rp := range p.rawProps {
		if err := p.applyProperty(rp.name, rp.value, global); err != nil {
			return err
		}
	}
	return nil
}

func (p *Package) applyProperty(name, value string, global map[string]string) error {
	key := strings.ToLower(name)

	expanded, err := substitute(value, global, p.Variables, p.file)
	if err != nil {
		return err
	}

	switch key {
	case "name":
		p.Name = expanded
	case "description":
		p.Description = expanded
	case "version":
		p.Version = expanded
	case "url":
		p.URL = expanded
	case "conflicts":
		// Parsed for completeness but not consulted by the resolver.
	case "cflags", "cflags.private":
		frags, err := fragments(expanded, p.file)
		if err != nil {
			return err
		}
		if key == "cflags" {
			p.Cflags = append(p.Cflags, frags...)
		} else {
			p.CflagsPrivate = append(p.CflagsPrivate, frags...)
		}
	case "libs":
		frags, err := fragments(expanded, p.file)
		if err != nil {
			return err
		}
		p.Libs = append(p.Libs, frags...)
	case "libs.private":
		frags, err := fragments(expanded, p.file)
		if err != nil {
			return err
		}
		p.LibsPrivate = append(p.LibsPrivate, frags...)
	case "requires":
		reqs, err := requirement.Parse(expanded)
		if err != nil {
			return err
		}
		p.Requires = reqs
	case "requires.private":
		reqs, err := requirement.Parse(expanded)
		if err != nil {
			return err
		}
		p.RequiresPrivate = reqs
	default:
		log.Warnf("%s: unknown property %q", p.file, name)
	}

	return nil
}

// Validate checks that the mandatory Name/Description/Version properties
// were set. It is called when a package is actually requested for use,
// not at scan time, matching the metadata format's lazy validation.
func (p *Package) Validate() error {
	var missing []string
	if p.Name == "" {
		missing = append(missing, "Name")
	}
	if p.Description == "" {
		missing = append(missing, "Description")
	}
	if p.Version == "" {
		missing = append(missing, "Version")
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s missing mandatory %s", errs.ErrParseError, p.PcFileDir, strings.Join(missing, ", "))
}
