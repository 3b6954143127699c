package projects

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/unified-scanner/pkg/errors"
	"github.com/arthur-debert/unified-scanner/pkg/filesystem"
	"github.com/arthur-debert/unified-scanner/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	fsys := filesystem.NewMemory()
	for _, dir := range []string{"/in/zeta", "/in/alpha", "/in/.hidden", "/in/Beta/nested"} {
		require.NoError(t, fsys.MkdirAll(dir, 0755))
	}
	require.NoError(t, fsys.WriteFile("/in/README.md", []byte("x"), 0644))

	got, err := Discover(fsys, "/in")
	require.NoError(t, err)

	assert.Equal(t, []types.Project{
		{Name: ".hidden", Path: "/in/.hidden"},
		{Name: "Beta", Path: "/in/Beta"},
		{Name: "alpha", Path: "/in/alpha"},
		{Name: "zeta", Path: "/in/zeta"},
	}, got)
}

func TestDiscover_Empty(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/in", 0755))
	require.NoError(t, fsys.WriteFile("/in/loose.txt", []byte("x"), 0644))

	got, err := Discover(fsys, "/in")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscover_Errors(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.WriteFile("/file", []byte("x"), 0644))

	_, err := Discover(fsys, "/missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	_, err = Discover(fsys, "/file")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDiscover_FollowsDirectorySymlinks(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "real"), 0755))
	require.NoError(t, os.Symlink(target, filepath.Join(root, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "dangling")))

	got, err := Discover(filesystem.NewOS(), root)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "linked", got[0].Name)
	assert.Equal(t, "real", got[1].Name)
}
