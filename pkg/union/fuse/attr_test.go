//go:build darwin || linux
// +build darwin linux

package fuse_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
	go_fuse "github.com/hanwen/go-fuse/v2/fuse"
	"github.com/stratumfs/stratumfs/pkg/union"
	"github.com/stratumfs/stratumfs/pkg/union/fuse"
	"github.com/stretchr/testify/require"
)

func TestToFUSEStatus(t *testing.T) {
	require.Equal(t, go_fuse.OK, fuse.ToFUSEStatus(union.StatusOK))
	require.Equal(t, go_fuse.EACCES, fuse.ToFUSEStatus(union.StatusErrAccess))
	require.Equal(t, go_fuse.EROFS, fuse.ToFUSEStatus(union.StatusErrROFS))
	require.Equal(t, go_fuse.EAGAIN, fuse.ToFUSEStatus(union.StatusErrRetry))
	require.Equal(t, go_fuse.Status(syscall.ESTALE), fuse.ToFUSEStatus(union.StatusErrStale))
	require.Equal(t, go_fuse.Status(syscall.ENODATA), fuse.ToFUSEStatus(union.StatusErrNoData))
}

func TestPopulateAttr(t *testing.T) {
	var attributes union.Attributes
	attributes.SetFileType(filesystem.FileTypeRegularFile)
	attributes.SetInodeNumber(1234)
	attributes.SetLinkCount(3)
	attributes.SetMode(union.NewModeFromRaw(0o644))
	attributes.SetOwnerUserID(1000)
	attributes.SetOwnerGroupID(1000)
	attributes.SetSizeBytes(42)
	attributes.SetLastDataModificationTime(time.Unix(1600000000, 500000000))

	var attr go_fuse.Attr
	fuse.PopulateAttr(&attributes, &attr)

	require.Equal(t, uint64(1234), attr.Ino)
	require.Equal(t, uint32(3), attr.Nlink)
	require.Equal(t, uint32(syscall.S_IFREG|0o644), attr.Mode)
	require.Equal(t, uint32(1000), attr.Owner.Uid)
	require.Equal(t, uint32(1000), attr.Owner.Gid)
	require.Equal(t, uint64(42), attr.Size)
	require.Equal(t, uint64(1600000000), attr.Mtime)
	require.Equal(t, uint32(500000000), attr.Mtimensec)
}

func TestCallerCredentials(t *testing.T) {
	// The superuser carries every override this layer understands.
	creds := fuse.CallerCredentials(&go_fuse.Caller{
		Owner: go_fuse.Owner{Uid: 0, Gid: 0},
	})
	require.True(t, creds.HasCapability(union.CapabilityAdministrator))
	require.True(t, creds.HasCapability(union.CapabilityPermissionOverride))

	creds = fuse.CallerCredentials(&go_fuse.Caller{
		Owner: go_fuse.Owner{Uid: 1000, Gid: 1000},
	})
	require.Equal(t, uint32(1000), creds.UserID())
	require.False(t, creds.HasCapability(union.CapabilityAdministrator))
}

func TestAccessMaskFromOpenFlags(t *testing.T) {
	mask, truncate := fuse.AccessMaskFromOpenFlags(syscall.O_RDONLY)
	require.Equal(t, union.AccessMaskRead, mask)
	require.False(t, truncate)

	mask, truncate = fuse.AccessMaskFromOpenFlags(syscall.O_WRONLY | syscall.O_TRUNC)
	require.Equal(t, union.AccessMaskWrite, mask)
	require.True(t, truncate)

	mask, truncate = fuse.AccessMaskFromOpenFlags(syscall.O_RDWR | syscall.O_APPEND)
	require.Equal(t, union.AccessMaskRead|union.AccessMaskWrite|union.AccessMaskAppend, mask)
	require.False(t, truncate)
}
