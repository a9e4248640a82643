/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package requirement_test

import (
	"testing"

	"github.com/cbuildtools/pcresolve/cmd/errors"
	"github.com/cbuildtools/pcresolve/cmd/requirement"
	"github.com/cbuildtools/pcresolve/cmd/version"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)

	t.Run("comma separated with spaces around the operator", func(t *testing.T) {
		got, err := requirement.Parse("foo >= 1.2, bar")
		assert.NoError(err)
		assert.Equal([]requirement.RequiredVersion{
			{Name: "foo", Comparison: version.GreaterEqual, Version: "1.2"},
			{Name: "bar", Comparison: version.AlwaysMatch},
		}, got)
	})

	t.Run("whitespace separated with no spaces around the operator", func(t *testing.T) {
		got, err := requirement.Parse("foo>=1.2 bar")
		assert.NoError(err)
		assert.Equal([]requirement.RequiredVersion{
			{Name: "foo", Comparison: version.GreaterEqual, Version: "1.2"},
			{Name: "bar", Comparison: version.AlwaysMatch},
		}, got)
	})

	t.Run("single name with no constraint", func(t *testing.T) {
		got, err := requirement.Parse("foo")
		assert.NoError(err)
		assert.Equal([]requirement.RequiredVersion{
			{Name: "foo", Comparison: version.AlwaysMatch},
		}, got)
	})

	t.Run("empty string yields no entries", func(t *testing.T) {
		got, err := requirement.Parse("")
		assert.NoError(err)
		assert.Nil(got)
	})

	t.Run("all six operators parse", func(t *testing.T) {
		for op, want := range map[string]version.Comparison{
			"=":  version.Equal,
			"==": version.Equal,
			"!=": version.NotEqual,
			"<":  version.LessThan,
			"<=": version.LessEqual,
			">":  version.GreaterThan,
			">=": version.GreaterEqual,
		} {
			got, err := requirement.Parse("foo " + op + " 1.0")
			assert.NoError(err)
			if assert.Len(got, 1) {
				assert.Equal(want, got[0].Comparison, "operator %q", op)
				assert.Equal("1.0", got[0].Version)
			}
		}
	})

	t.Run("multiple entries separated only by newlines", func(t *testing.T) {
		got, err := requirement.Parse("foo\nbar\n")
		assert.NoError(err)
		assert.Equal([]requirement.RequiredVersion{
			{Name: "foo", Comparison: version.AlwaysMatch},
			{Name: "bar", Comparison: version.AlwaysMatch},
		}, got)
	})

	t.Run("operator with no following version is an error", func(t *testing.T) {
		_, err := requirement.Parse("foo >= ")
		assert.Error(err)
		assert.True(errors.Is(err, errors.ErrBadRequirement))
	})

	t.Run("entry starting with an operator has no name", func(t *testing.T) {
		_, err := requirement.Parse(">= 1.2")
		assert.Error(err)
		assert.True(errors.Is(err, errors.ErrBadRequirement))
	})
}

func TestRequiredVersionString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("foo", requirement.RequiredVersion{Name: "foo", Comparison: version.AlwaysMatch}.String())
	assert.Equal("foo >= 1.2", requirement.RequiredVersion{
		Name: "foo", Comparison: version.GreaterEqual, Version: "1.2",
	}.String())
}
