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

func TestNodeGetXattr(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	_, _, lower, node := newLowerOnlyNode(t, ctrl, mock.NewMockCopyUpEngine(ctrl), union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeRegularFile)
	defer node.Release()

	lower.EXPECT().GetXattr(mounterCredentials, "user.mime_type").Return([]byte("text/plain"), union.StatusOK)
	value, s := node.GetXattr(ctx, "user.mime_type")
	require.Equal(t, union.StatusOK, s)
	require.Equal(t, []byte("text/plain"), value)
}

func TestNodeSetXattr(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	t.Run("InternalNamespace", func(t *testing.T) {
		// The bookkeeping namespace cannot be written through
		// the logical view, even by the superuser.
		_, _, _, node := newLowerOnlyNode(t, ctrl, mock.NewMockCopyUpEngine(ctrl), union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeRegularFile)
		defer node.Release()

		s := node.SetXattr(ctx, "trusted.overlay.nlink", []byte("U+9"), union.XattrSetDefault)
		require.Equal(t, union.StatusErrPerm, s)
	})

	t.Run("TriggersCopyUp", func(t *testing.T) {
		engine := mock.NewMockCopyUpEngine(ctrl)
		_, _, _, node := newLowerOnlyNode(t, ctrl, engine, union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeRegularFile)
		defer node.Release()

		upper := mock.NewMockObject(ctrl)
		upper.EXPECT().ID().Return(union.ObjectID{Device: 12, Inode: 320}).AnyTimes()
		engine.EXPECT().CopyUp(ctx, node).DoAndReturn(
			func(ctx context.Context, node *union.Node) union.Status {
				node.CommitCopyUp(upper)
				return union.StatusOK
			})
		upper.EXPECT().SetXattr(mounterCredentials, "user.mime_type", []byte("text/plain"), union.XattrSetCreate).Return(union.StatusOK)

		s := node.SetXattr(ctx, "user.mime_type", []byte("text/plain"), union.XattrSetCreate)
		require.Equal(t, union.StatusOK, s)
	})
}

func TestNodeRemoveXattr(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	t.Run("AbsentSkipsCopyUp", func(t *testing.T) {
		// Removing an attribute that does not exist on the
		// origin fails without promoting the file to the
		// writable layer.
		engine := mock.NewMockCopyUpEngine(ctrl)
		_, _, lower, node := newLowerOnlyNode(t, ctrl, engine, union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeRegularFile)
		defer node.Release()

		lower.EXPECT().GetXattr(mounterCredentials, "user.mime_type").Return(nil, union.StatusErrNoData)
		s := node.RemoveXattr(ctx, "user.mime_type")
		require.Equal(t, union.StatusErrNoData, s)
	})

	t.Run("PresentTriggersCopyUp", func(t *testing.T) {
		engine := mock.NewMockCopyUpEngine(ctrl)
		_, _, lower, node := newLowerOnlyNode(t, ctrl, engine, union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeRegularFile)
		defer node.Release()

		upper := mock.NewMockObject(ctrl)
		upper.EXPECT().ID().Return(union.ObjectID{Device: 12, Inode: 321}).AnyTimes()
		lower.EXPECT().GetXattr(mounterCredentials, "user.mime_type").Return([]byte("text/plain"), union.StatusOK)
		engine.EXPECT().CopyUp(ctx, node).DoAndReturn(
			func(ctx context.Context, node *union.Node) union.Status {
				node.CommitCopyUp(upper)
				return union.StatusOK
			})
		upper.EXPECT().RemoveXattr(mounterCredentials, "user.mime_type").Return(union.StatusOK)

		require.Equal(t, union.StatusOK, node.RemoveXattr(ctx, "user.mime_type"))
	})

	t.Run("InternalNamespace", func(t *testing.T) {
		_, _, _, node := newLowerOnlyNode(t, ctrl, mock.NewMockCopyUpEngine(ctrl), union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeRegularFile)
		defer node.Release()

		require.Equal(t, union.StatusErrPerm, node.RemoveXattr(ctx, "trusted.overlay.impure"))
	})
}

func TestNodeListXattrs(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	_, _, lower, node := newLowerOnlyNode(t, ctrl, mock.NewMockCopyUpEngine(ctrl), union.MountOptions{HasWritableLayer: true}, filesystem.FileTypeRegularFile)
	defer node.Release()

	names := []string{"user.mime_type", "trusted.overlay.nlink", "trusted.overlay.origin", "trusted.acme.build_id"}
	lower.EXPECT().ListXattrs(mounterCredentials).Return(names, union.StatusOK).Times(2)

	// Unprivileged callers see the unprivileged namespace only.
	listed, s := node.ListXattrs(ctx, union.NewCredentials(1000, 1000, 0))
	require.Equal(t, union.StatusOK, s)
	require.Equal(t, []string{"user.mime_type"}, listed)

	// Administrators additionally see the privileged namespace, but
	// never the union's own bookkeeping attributes.
	listed, s = node.ListXattrs(ctx, union.NewCredentials(0, 0, union.CapabilityAdministrator))
	require.Equal(t, union.StatusOK, s)
	require.Equal(t, []string{"user.mime_type", "trusted.acme.build_id"}, listed)
}
