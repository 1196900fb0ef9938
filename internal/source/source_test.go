package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	perrors "github.com/livp123/evtxsift/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("<Event/>\n"), 0600))
}

// TestResolve_Directory tests that only matching extensions are picked up
// TestResolve_Directory 测试只选取匹配扩展名的文件
func TestResolve_Directory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Security.xml"))
	touch(t, filepath.Join(dir, "System.XML"))
	touch(t, filepath.Join(dir, "notes.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.xml"), 0755))

	files, skipped, err := Resolve(dir, ".xml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "Security.xml"),
		filepath.Join(dir, "System.XML"),
	}, files)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "nested.xml"),
	}, skipped)
}

func TestResolve_ExtensionWithoutDot(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.evtx"))
	touch(t, filepath.Join(dir, "b.xml"))

	files, _, err := Resolve(dir, "evtx")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.evtx")}, files)
}

func TestResolve_SingleFileIgnoresExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.log")
	touch(t, path)

	files, skipped, err := Resolve(path, ".xml")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
	assert.Empty(t, skipped)
}

func TestResolve_Missing(t *testing.T) {
	_, _, err := Resolve(filepath.Join(t.TempDir(), "missing"), ".xml")
	assert.True(t, errors.Is(err, perrors.ErrInvalidInput))
}

func TestResolve_Symlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "real.xml")
	touch(t, target)
	if err := os.Symlink(target, filepath.Join(dir, "link.xml")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, _, err := Resolve(dir, ".xml")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "link.xml")}, files)
}

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, ".xml", NormalizeExt("xml"))
	assert.Equal(t, ".xml", NormalizeExt(".xml"))
	assert.Equal(t, "", NormalizeExt(""))
}
