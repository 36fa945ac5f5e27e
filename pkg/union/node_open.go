package union

import (
	"context"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
)

// OpenWithCopyUp ensures that a node that is about to be opened is
// backed by a writable object when the open requires one. upperAliased
// indicates whether the path through which the node is being opened
// already refers to the writable layer; a node that has been copied up
// but is still reached through an origin alias must be copied up again
// through that alias to break the stale link.
func (n *Node) OpenWithCopyUp(ctx context.Context, access AccessMask, truncate, upperAliased bool) Status {
	if !n.openNeedsCopyUp(access, truncate, upperAliased) {
		return StatusOK
	}
	m := n.table.mount
	if s := m.WantWrite(); s != StatusOK {
		return s
	}
	defer m.DropWrite()
	return n.table.copyUpEngine.CopyUpWithAccess(ctx, n, access, truncate)
}

func (n *Node) openNeedsCopyUp(access AccessMask, truncate, upperAliased bool) bool {
	upper, _ := n.references()
	if upper != nil && upperAliased {
		return false
	}
	// Device and FIFO nodes are always opened through the logical
	// layer itself, so writing to them never dirties a layer.
	if isSpecialFileType(n.kind) {
		return false
	}
	return access&AccessMaskWrite != 0 || truncate
}

// Readlink reads the target of a symbolic link.
func (n *Node) Readlink(ctx context.Context) ([]byte, Status) {
	if n.kind != filesystem.FileTypeSymlink {
		return nil, StatusErrInval
	}
	return n.representative().Readlink(n.table.mount.MounterCredentials())
}
