/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package metadata

import (
	"fmt"
	"strings"

	errs "github.com/cbuildtools/pcresolve/cmd/errors"
)

// tokenize splits a Cflags/Libs value into shell-style tokens: whitespace
// separates tokens, single and double quotes group whitespace into one
// token, and a backslash escapes the next character.
func tokenize(value, file string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	haveToken := false

	i := 0
	for i < len(value) {
		c := value[i]

		switch {
		case c == ' ' || c == '\t':
			if haveToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				haveToken = false
			}
			i++

		case c == '\\':
			if i+1 >= len(value) {
				return nil, fmt.Errorf("%w: trailing backslash in %s", errs.ErrParseError, file)
			}
			cur.WriteByte(value[i+1])
			haveToken = true
			i += 2

		case c == '\'':
			end := strings.IndexByte(value[i+1:], '\'')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated ' in %s", errs.ErrParseError, file)
			}
			cur.WriteString(value[i+1 : i+1+end])
			haveToken = true
			i += end + 2

		case c == '"':
			consumed, err := scanDoubleQuoted(value[i+1:], &cur, file)
			if err != nil {
				return nil, err
			}
			haveToken = true
			i += consumed + 1

		default:
			cur.WriteByte(c)
			haveToken = true
			i++
		}
	}

	if haveToken {
		tokens = append(tokens, cur.String())
	}

	return tokens, nil
}

// scanDoubleQuoted copies s up to its closing '"' into cur, honoring
// backslash escapes, and returns the number of bytes of s consumed
// (including the closing quote).
func scanDoubleQuoted(s string, cur *strings.Builder, file string) (int, error) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			return i + 1, nil
		case '\\':
			if i+1 >= len(s) {
				return 0, fmt.Errorf("%w: trailing backslash in %s", errs.ErrParseError, file)
			}
			cur.WriteByte(s[i+1])
			i++
		default:
			cur.WriteByte(s[i])
		}
	}

	return 0, fmt.Errorf("%w: unterminated \" in %s", errs.ErrParseError, file)
}

// fragments tokenizes value and classifies each token into a Fragment.
func fragments(value, file string) ([]Fragment, error) {
	toks, err := tokenize(value, file)
	if err != nil {
		return nil, err
	}

	out := make([]Fragment, 0, len(toks))
	for _, t := range toks {
		out = append(out, Fragment{Kind: classify(t), Text: t})
	}
	return out, nil
}
