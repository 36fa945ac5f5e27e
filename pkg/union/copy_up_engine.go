package union

import (
	"context"
)

// CopyUpEngine lazily copies the read-only representation of a node
// into the writable layer, so that the node can be mutated. The byte
// level copy, whiteout creation and directory impurity marking are the
// engine's concern; this layer only decides when a copy-up is needed.
//
// On success, implementations must guarantee that the node's writable
// reference is present, by calling Node.CommitCopyUp() before
// returning. Copying up an already copied up node must succeed without
// side effects. Copy-up performs I/O and may block; it is never
// invoked from contexts that declared themselves non-suspending.
type CopyUpEngine interface {
	// CopyUp copies the node up using the access mode it is
	// currently opened with.
	CopyUp(ctx context.Context, node *Node) Status
	// CopyUpWithAccess copies the node up for a subsequent open
	// with the provided access mode.
	CopyUpWithAccess(ctx context.Context, node *Node, access AccessMask, truncate bool) Status
}

type readOnlyCopyUpEngine struct{}

// NewReadOnlyCopyUpEngine creates a CopyUpEngine for mounts without a
// writable layer. All copy-up requests fail, reporting the mount as
// read-only. Operations that only trigger copy-up conditionally remain
// usable.
func NewReadOnlyCopyUpEngine() CopyUpEngine {
	return readOnlyCopyUpEngine{}
}

func (readOnlyCopyUpEngine) CopyUp(ctx context.Context, node *Node) Status {
	return StatusErrROFS
}

func (readOnlyCopyUpEngine) CopyUpWithAccess(ctx context.Context, node *Node, access AccessMask, truncate bool) Status {
	return StatusErrROFS
}
