/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package metadata

import (
	"fmt"
	"strings"

	errs "github.com/cbuildtools/pcresolve/cmd/errors"
)

// maxSubstitutions bounds the number of "${name}" references expanded
// while resolving a single value, so a cyclic definition (a references b,
// b references a) fails instead of recursing forever.
const maxSubstitutions = 15

// substitute expands every "${name}" reference in value, consulting
// global before local for each name, and recursing into whatever raw text
// that name holds. global and local store unexpanded (raw) variable text;
// substitution therefore happens lazily, at the point a value is used,
// not when the variable is defined.
func substitute(value string, global, local map[string]string, file string) (string, error) {
	budget := maxSubstitutions
	return expand(value, global, local, file, &budget)
}

func expand(value string, global, local map[string]string, file string, budget *int) (string, error) {
	var b strings.Builder

	for i := 0; i < len(value); {
		if value[i] != '$' || i+1 >= len(value) || value[i+1] != '{' {
			b.WriteByte(value[i])
			i++
			continue
		}

		end := strings.IndexByte(value[i+2:], '}')
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated ${ in %s", errs.ErrParseError, file)
		}
		end += i + 2
		name := value[i+2 : end]

		*budget--
		if *budget < 0 {
			return "", fmt.Errorf("%w: %s", errs.ErrSubstitutionCycle, file)
		}

		raw, ok := lookup(name, global, local)
		if !ok {
			return "", fmt.Errorf("%w: %q referenced by %s", errs.ErrUnknownVariable, name, file)
		}

		resolved, err := expand(raw, global, local, file, budget)
		if err != nil {
			return "", err
		}

		b.WriteString(resolved)
		i = end + 1
	}

	return b.String(), nil
}

func lookup(name string, global, local map[string]string) (string, bool) {
	if v, ok := global[name]; ok {
		return v, true
	}
	v, ok := local[name]
	return v, ok
}
