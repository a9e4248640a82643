/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cbuildtools/pcresolve/cmd/errors"
	"github.com/cbuildtools/pcresolve/cmd/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestNewGlobalEnvDefaultsTopBuildDir(t *testing.T) {
	env := registry.NewGlobalEnv("")
	assert.Equal(t, "$(top_builddir)", env["pc_top_builddir"])
}

func TestNewGlobalEnvUsesResolvedValue(t *testing.T) {
	env := registry.NewGlobalEnv("/some/build/dir")
	assert.Equal(t, "/some/build/dir", env["pc_top_builddir"])
}

func TestLoadCachesByKey(t *testing.T) {
	dir := t.TempDir()
	writePc(t, dir, "foo.pc", "Name: Foo\nDescription: d\nVersion: 1.0\n")

	r := registry.New([]string{dir}, registry.GlobalEnv{})
	a, err := r.Load("foo")
	require.NoError(t, err)

	b, err := r.Load("foo")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestLoadPrefersUninstalled(t *testing.T) {
	dir := t.TempDir()
	writePc(t, dir, "foo.pc", "Name: Foo\nDescription: d\nVersion: 1.0\n")
	writePc(t, dir, "foo-uninstalled.pc", "Name: Foo\nDescription: d\nVersion: 2.0\n")

	r := registry.New([]string{dir}, registry.GlobalEnv{})
	pkg, err := r.Load("foo")
	require.NoError(t, err)
	assert.True(t, pkg.Uninstalled)
	assert.Equal(t, "2.0", pkg.Version)
}

func TestLoadDisableUninstalled(t *testing.T) {
	dir := t.TempDir()
	writePc(t, dir, "foo.pc", "Name: Foo\nDescription: d\nVersion: 1.0\n")
	writePc(t, dir, "foo-uninstalled.pc", "Name: Foo\nDescription: d\nVersion: 2.0\n")

	r := registry.New([]string{dir}, registry.GlobalEnv{})
	r.DisableUninstalled = true
	pkg, err := r.Load("foo")
	require.NoError(t, err)
	assert.False(t, pkg.Uninstalled)
	assert.Equal(t, "1.0", pkg.Version)
}

func TestLoadNotFound(t *testing.T) {
	r := registry.New([]string{t.TempDir()}, registry.GlobalEnv{})
	_, err := r.Load("nosuch")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestLoadDirectPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "standalone.pc")
	require.NoError(t, os.WriteFile(path, []byte("Name: S\nDescription: d\nVersion: 1.0\n"), 0o644))

	r := registry.New(nil, registry.GlobalEnv{})
	pkg, err := r.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "S", pkg.Name)
}

func TestPcFileDirAutoDefined(t *testing.T) {
	dir := t.TempDir()
	writePc(t, dir, "foo.pc", "Cflags: -I${pcfiledir}\nName: Foo\nDescription: d\nVersion: 1.0\n")

	r := registry.New([]string{dir}, registry.GlobalEnv{})
	pkg, err := r.Load("foo")
	require.NoError(t, err)
	require.Len(t, pkg.Cflags, 1)
	assert.Equal(t, "-I"+dir, pkg.Cflags[0].Text)
}

func TestRewritePrefix(t *testing.T) {
	libDir := t.TempDir()
	pkgconfigDir := filepath.Join(libDir, "lib", "pkgconfig")
	require.NoError(t, os.MkdirAll(pkgconfigDir, 0o755))
	writePc(t, pkgconfigDir, "foo.pc", "prefix=/wrong\nCflags: -I${prefix}/include\nName: Foo\nDescription: d\nVersion: 1.0\n")

	r := registry.New([]string{pkgconfigDir}, registry.GlobalEnv{})
	r.RewritePrefix = true
	pkg, err := r.Load("foo")
	require.NoError(t, err)
	require.Len(t, pkg.Cflags, 1)
	assert.Equal(t, "-I"+filepath.Join(libDir, "include"), pkg.Cflags[0].Text)
}

func TestListAll(t *testing.T) {
	dir := t.TempDir()
	writePc(t, dir, "foo.pc", "Name: Foo\nDescription: the foo library\nVersion: 1.0\n")
	writePc(t, dir, "bar.pc", "Name: Bar\nDescription: the bar library\nVersion: 1.0\n")

	r := registry.New([]string{dir}, registry.GlobalEnv{})
	entries, err := r.ListAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bar", entries[0].Name)
	assert.Equal(t, "foo", entries[1].Name)
}
