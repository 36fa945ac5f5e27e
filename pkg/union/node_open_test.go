package union_test

import (
	"context"
	"testing"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
	"github.com/stratumfs/stratumfs/internal/mock"
	"github.com/stratumfs/stratumfs/pkg/union"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNodeOpenWithCopyUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	t.Run("ReadDoesNotCopyUp", func(t *testing.T) {
		_, _, _, node := newLowerOnlyNode(t, ctrl, mock.NewMockCopyUpEngine(ctrl), union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeRegularFile)
		defer node.Release()

		s := node.OpenWithCopyUp(ctx, union.AccessMaskRead, false, false)
		require.Equal(t, union.StatusOK, s)
	})

	t.Run("WriteCopiesUp", func(t *testing.T) {
		engine := mock.NewMockCopyUpEngine(ctrl)
		_, _, _, node := newLowerOnlyNode(t, ctrl, engine, union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeRegularFile)
		defer node.Release()

		engine.EXPECT().CopyUpWithAccess(ctx, node, union.AccessMaskRead|union.AccessMaskWrite, false).Return(union.StatusOK)
		s := node.OpenWithCopyUp(ctx, union.AccessMaskRead|union.AccessMaskWrite, false, false)
		require.Equal(t, union.StatusOK, s)
	})

	t.Run("TruncateCopiesUp", func(t *testing.T) {
		// Opening for reading with truncation still modifies
		// the file.
		engine := mock.NewMockCopyUpEngine(ctrl)
		_, _, _, node := newLowerOnlyNode(t, ctrl, engine, union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeRegularFile)
		defer node.Release()

		engine.EXPECT().CopyUpWithAccess(ctx, node, union.AccessMaskRead, true).Return(union.StatusOK)
		require.Equal(t, union.StatusOK, node.OpenWithCopyUp(ctx, union.AccessMaskRead, true, false))
	})

	t.Run("AlreadyCopiedUp", func(t *testing.T) {
		_, _, _, node := newLowerOnlyNode(t, ctrl, mock.NewMockCopyUpEngine(ctrl), union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeRegularFile)
		defer node.Release()

		upper := mock.NewMockObject(ctrl)
		upper.EXPECT().ID().Return(union.ObjectID{Device: 12, Inode: 330}).AnyTimes()
		node.CommitCopyUp(upper)

		s := node.OpenWithCopyUp(ctx, union.AccessMaskWrite, false, true)
		require.Equal(t, union.StatusOK, s)
	})

	t.Run("StaleOriginAlias", func(t *testing.T) {
		// The node has a writable object, but the path through
		// which it is being opened still refers to the origin.
		// The open must go through copy-up again to break the
		// stale hard link.
		engine := mock.NewMockCopyUpEngine(ctrl)
		_, _, _, node := newLowerOnlyNode(t, ctrl, engine, union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeRegularFile)
		defer node.Release()

		upper := mock.NewMockObject(ctrl)
		upper.EXPECT().ID().Return(union.ObjectID{Device: 12, Inode: 331}).AnyTimes()
		node.CommitCopyUp(upper)

		engine.EXPECT().CopyUpWithAccess(ctx, node, union.AccessMaskWrite, false).Return(union.StatusOK)
		require.Equal(t, union.StatusOK, node.OpenWithCopyUp(ctx, union.AccessMaskWrite, false, false))
	})

	t.Run("SpecialFile", func(t *testing.T) {
		// Writing to a FIFO does not modify layer contents, so
		// opening one never copies up.
		_, _, _, node := newLowerOnlyNode(t, ctrl, mock.NewMockCopyUpEngine(ctrl), union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeFIFO)
		defer node.Release()

		s := node.OpenWithCopyUp(ctx, union.AccessMaskRead|union.AccessMaskWrite, false, false)
		require.Equal(t, union.StatusOK, s)
	})

	t.Run("ReadOnlyMount", func(t *testing.T) {
		_, _, _, node := newLowerOnlyNode(t, ctrl, mock.NewMockCopyUpEngine(ctrl), union.MountOptions{}, filesystem.FileTypeRegularFile)
		defer node.Release()

		s := node.OpenWithCopyUp(ctx, union.AccessMaskWrite, false, false)
		require.Equal(t, union.StatusErrROFS, s)
	})
}

func TestNodeReadlink(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	t.Run("Symlink", func(t *testing.T) {
		_, _, lower, node := newLowerOnlyNode(t, ctrl, mock.NewMockCopyUpEngine(ctrl), union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeSymlink)
		defer node.Release()

		lower.EXPECT().Readlink(mounterCredentials).Return([]byte("../target"), union.StatusOK)
		target, s := node.Readlink(ctx)
		require.Equal(t, union.StatusOK, s)
		require.Equal(t, []byte("../target"), target)
	})

	t.Run("NotASymlink", func(t *testing.T) {
		_, _, _, node := newLowerOnlyNode(t, ctrl, mock.NewMockCopyUpEngine(ctrl), union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeRegularFile)
		defer node.Release()

		_, s := node.Readlink(ctx)
		require.Equal(t, union.StatusErrInval, s)
	})
}
