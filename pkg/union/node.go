package union

import (
	"sync"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
)

// NodeHandle is the stable identifier of a Node within its NodeTable.
// Handles are never reused for as long as the table exists.
type NodeHandle uint64

// Node is the logical, union-visible file system node. It reconciles
// up to three physical objects: an exclusively owned object in the
// writable layer, the read-only origin object it was derived from, and
// an object in the reserved index area of the writable layer. At least
// one of the writable and read-only references is always present.
//
// Nodes are reference counted. Callers that obtained a Node through
// NodeTable.GetNode() or NodeTable.ResolveFileHandle() must call
// Release() when they no longer need it. The identity cache only holds
// a non-owning back-reference, so dropping the last caller reference
// removes the node from the table.
type Node struct {
	table       *NodeTable
	handle      NodeHandle
	inodeNumber uint64
	cacheKey    ObjectID
	cached      bool
	indexed     bool

	// Closed once the node's metadata, including the decoded union
	// link count, has been populated. Concurrent resolutions of the
	// same cache key block on this channel.
	constructed chan struct{}

	// Populated before constructed is closed; immutable afterwards.
	kind   filesystem.FileType
	lower  Object
	index  Object
	impure bool

	// Protected by table.lock.
	upper          Object
	referenceCount uint
	linkCount      uint32
	mode           Mode
	ownerUserID    uint32
	ownerGroupID   uint32

	// Serializes mutations of the writable object, so that a
	// concurrent stat or permission check never observes a half
	// applied change or a link count delta record that is
	// inconsistent with the object it describes.
	upperLock sync.Mutex
}

// Handle returns the stable identifier of the node within its table.
func (n *Node) Handle() NodeHandle {
	return n.handle
}

// Kind returns the file type of the node.
func (n *Node) Kind() filesystem.FileType {
	return n.kind
}

// IsImpure returns whether the writable directory backing this node
// contains a mix of natively created and copied up entries. Impure
// directories require the directory merging layer to re-derive entry
// identities instead of trusting the writable layer's.
func (n *Node) IsImpure() bool {
	return n.impure
}

// IsIndexed returns whether the node's identity and link count state
// is anchored by an object in the index area of the writable layer.
func (n *Node) IsIndexed() bool {
	return n.indexed
}

// LinkCount returns the union hard link count of the node: the number
// of union-visible paths referring to it, reconciling the independent
// link counts of the writable and read-only objects.
func (n *Node) LinkCount() uint32 {
	nt := n.table
	nt.lock.Lock()
	defer nt.lock.Unlock()
	return n.linkCount
}

// AdjustLinkCount changes the union link count of the node. It is to
// be called by link, unlink and rename logic after the corresponding
// mutation of the writable object has committed. The matching delta
// record must have been written beforehand through
// RecordLinkCountVsUpper().
func (n *Node) AdjustLinkCount(delta int) {
	nt := n.table
	nt.lock.Lock()
	defer nt.lock.Unlock()
	newLinkCount := int64(n.linkCount) + int64(delta)
	if newLinkCount < 0 {
		panic("Attempted to lower the link count of a node below zero")
	}
	n.linkCount = uint32(newLinkCount)
}

// Acquire increases the reference count of the node, for callers that
// hand out additional references.
func (n *Node) Acquire() {
	nt := n.table
	nt.lock.Lock()
	defer nt.lock.Unlock()
	if n.referenceCount == 0 {
		panic("Attempted to acquire a node that has no references")
	}
	n.referenceCount++
}

// Release drops a reference to the node. When the last reference is
// dropped, the node is removed from its table and from the identity
// cache.
func (n *Node) Release() {
	nt := n.table
	nt.lock.Lock()
	defer nt.lock.Unlock()
	if n.referenceCount == 0 {
		panic("Attempted to release a node that has no references")
	}
	n.referenceCount--
	if n.referenceCount == 0 {
		delete(nt.nodes, n.handle)
		if n.cached {
			delete(nt.cache, n.cacheKey)
		}
	}
}

// CommitCopyUp attaches the writable object that a completed copy-up
// produced. The copy-up engine must call this before reporting
// success, so that the node's writable reference is guaranteed to be
// present afterwards.
func (n *Node) CommitCopyUp(upper Object) {
	nt := n.table
	nt.lock.Lock()
	defer nt.lock.Unlock()
	if n.upper == nil {
		n.upper = upper
	}
}

// references returns the current writable and read-only objects of the
// node. Both are read under the table lock, so that a reference is
// never observed in a torn state with respect to a concurrent copy-up.
func (n *Node) references() (Object, Object) {
	nt := n.table
	nt.lock.Lock()
	defer nt.lock.Unlock()
	return n.upper, n.lower
}

// representative returns the best available physical object backing
// the node: the writable object if present, the read-only origin
// otherwise.
func (n *Node) representative() Object {
	upper, lower := n.references()
	if upper != nil {
		return upper
	}
	return lower
}

// logicalOwnership returns the cached mode and ownership of the
// logical node, used for permission checks with the caller's own
// credentials.
func (n *Node) logicalOwnership() (Mode, uint32, uint32) {
	nt := n.table
	nt.lock.Lock()
	defer nt.lock.Unlock()
	return n.mode, n.ownerUserID, n.ownerGroupID
}

// verifyLocked checks that the physical objects discovered through the
// current path are consistent with the ones stored in the node. A nil
// argument does not invalidate a stored reference, as a node may
// legitimately be resolved through a partial view; for directories,
// however, a stored reference must not appear where the path provides
// none, as a directory can only gain an origin or a writable object
// through explicit copy-up.
func (n *Node) verifyLocked(upper, lower Object) bool {
	if n.kind == filesystem.FileTypeDirectory {
		if lower == nil && n.lower != nil {
			return false
		}
		if upper == nil && n.upper != nil {
			return false
		}
	}
	if lower != nil && (n.lower == nil || n.lower.ID() != lower.ID()) {
		return false
	}
	if upper != nil && (n.upper == nil || n.upper.ID() != upper.ID()) {
		return false
	}
	return true
}
