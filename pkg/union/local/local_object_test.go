package local_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
	"github.com/stratumfs/stratumfs/pkg/union"
	"github.com/stratumfs/stratumfs/pkg/union/local"
	"github.com/stretchr/testify/require"
)

func TestLocalObjectRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("Hello world"), 0o600))
	require.NoError(t, os.Chmod(path, 0o640))

	o, err := local.NewObject(path)
	require.NoError(t, err)
	require.Equal(t, filesystem.FileTypeRegularFile, o.Kind())

	creds := union.NewCredentials(1000, 1000, 0)
	requested := union.AttributesMaskFileType | union.AttributesMaskInodeNumber |
		union.AttributesMaskLinkCount | union.AttributesMaskMode | union.AttributesMaskSizeBytes
	var attributes union.Attributes
	require.Equal(t, union.StatusOK, o.GetAttributes(creds, requested, &attributes))
	require.Equal(t, filesystem.FileTypeRegularFile, attributes.GetFileType())
	require.Equal(t, uint32(1), attributes.GetLinkCount())
	mode, ok := attributes.GetMode()
	require.True(t, ok)
	require.Equal(t, union.NewModeFromRaw(0o640), mode)
	sizeBytes, ok := attributes.GetSizeBytes()
	require.True(t, ok)
	require.Equal(t, uint64(11), sizeBytes)

	// The identity must be stable across instantiations, and match
	// the reported inode number.
	o2, err := local.NewObject(path)
	require.NoError(t, err)
	require.Equal(t, o.ID(), o2.ID())
	require.Equal(t, attributes.GetInodeNumber(), o.ID().Inode)

	// Truncation through SetAttributes().
	var in union.Attributes
	in.SetSizeBytes(5)
	require.Equal(t, union.StatusOK, o.SetAttributes(creds, &in, union.AttributesMaskSizeBytes))
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("Hello"), contents)

	// Mode changes through SetAttributes().
	in = union.Attributes{}
	in.SetMode(union.NewModeFromRaw(0o600))
	require.Equal(t, union.StatusOK, o.SetAttributes(creds, &in, union.AttributesMaskMode))
	info, err := os.Lstat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.Equal(t, union.StatusOK, o.CheckAccess(creds, union.AccessMaskRead|union.AccessMaskWrite))
}

func TestLocalObjectSymlink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symlink")
	require.NoError(t, os.Symlink("../target", path))

	o, err := local.NewObject(path)
	require.NoError(t, err)
	require.Equal(t, filesystem.FileTypeSymlink, o.Kind())

	creds := union.NewCredentials(1000, 1000, 0)
	target, s := o.Readlink(creds)
	require.Equal(t, union.StatusOK, s)
	require.Equal(t, []byte("../target"), target)
}

func TestLocalObjectMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent")
	_, err := local.NewObject(path)
	require.Error(t, err)

	// An object whose file disappears after instantiation reports
	// the failure per operation.
	present := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(present, nil, 0o600))
	o, err := local.NewObject(present)
	require.NoError(t, err)
	require.NoError(t, os.Remove(present))

	var attributes union.Attributes
	s := o.GetAttributes(union.NewCredentials(1000, 1000, 0), union.AttributesMaskFileType, &attributes)
	require.Equal(t, union.StatusErrNoEnt, s)
}

func TestLocalObjectDirectory(t *testing.T) {
	path := t.TempDir()
	o, err := local.NewObject(path)
	require.NoError(t, err)
	require.Equal(t, filesystem.FileTypeDirectory, o.Kind())

	var attributes union.Attributes
	s := o.GetAttributes(union.NewCredentials(1000, 1000, 0), union.AttributesMaskFileType, &attributes)
	require.Equal(t, union.StatusOK, s)
	require.Equal(t, filesystem.FileTypeDirectory, attributes.GetFileType())
}
