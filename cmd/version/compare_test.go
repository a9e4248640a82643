/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package version_test

import (
	"testing"

	"github.com/cbuildtools/pcresolve/cmd/version"
	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	assert := assert.New(t)

	t.Run("equal strings compare equal", func(t *testing.T) {
		assert.Equal(0, version.Compare("1.2.3", "1.2.3"))
	})

	t.Run("empty string is less than any non-empty string", func(t *testing.T) {
		assert.True(version.Compare("", "1.0") < 0)
		assert.True(version.Compare("1.0", "") > 0)
		assert.Equal(0, version.Compare("", ""))
	})

	t.Run("extra trailing run makes the longer version greater", func(t *testing.T) {
		assert.True(version.Compare("1.0", "1.0.0") < 0)
		assert.True(version.Compare("1.0.0", "1.0") > 0)
	})

	t.Run("numeric runs compare by magnitude, not lexically", func(t *testing.T) {
		assert.True(version.Compare("1.10", "1.9") > 0)
		assert.True(version.Compare("1.9", "1.10") < 0)
	})

	t.Run("non-digit runs compare lexically", func(t *testing.T) {
		assert.True(version.Compare("1.0a", "1.0b") < 0)
		assert.True(version.Compare("1.0b", "1.0a") > 0)
	})

	t.Run("leading zeros do not affect numeric comparison", func(t *testing.T) {
		assert.Equal(0, version.Compare("1.02", "1.2"))
	})

	t.Run("antisymmetric", func(t *testing.T) {
		for _, pair := range [][2]string{
			{"1.2.3", "1.2.4"},
			{"2.0", "1.9.9"},
			{"1.0a", "1.0"},
		} {
			a, b := pair[0], pair[1]
			assert.Equal(-sign(version.Compare(a, b)), sign(version.Compare(b, a)))
		}
	})
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestTest(t *testing.T) {
	assert := assert.New(t)

	assert.True(version.Test(version.AlwaysMatch, "1.0", "9.9"))
	assert.True(version.Test(version.GreaterEqual, "1.2.3", "1.2"))
	assert.False(version.Test(version.GreaterEqual, "1.1", "1.2"))
	assert.True(version.Test(version.Equal, "1.2.3", "1.2.3"))
	assert.True(version.Test(version.NotEqual, "1.2.3", "1.2.4"))
	assert.True(version.Test(version.LessThan, "1.2", "1.10"))
}
