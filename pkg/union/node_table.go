package union

import (
	"sync"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
	"github.com/buildbarn/bb-storage/pkg/random"
	"github.com/buildbarn/bb-storage/pkg/util"
)

// NodeTable is the process-wide arena of logical nodes of a single
// mount, together with the identity cache that deduplicates them by
// physical object. Two concurrent resolutions of the same physical
// object are guaranteed to observe the same Node instance for as long
// as it remains referenced.
type NodeTable struct {
	mount                *Mount
	copyUpEngine         CopyUpEngine
	inodeNumberGenerator random.ThreadSafeGenerator
	errorLogger          util.ErrorLogger

	lock       sync.Mutex
	nextHandle NodeHandle
	nodes      map[NodeHandle]*Node
	cache      map[ObjectID]NodeHandle
}

// NewNodeTable creates a NodeTable for a mount.
//
// The error logger receives diagnostics for conditions that are
// recovered from locally, such as malformed link count delta records.
// As these may be emitted on every resolution of an affected object,
// wrapping the logger with util.NewRateLimitingErrorLogger is advised.
func NewNodeTable(mount *Mount, copyUpEngine CopyUpEngine, inodeNumberGenerator random.ThreadSafeGenerator, errorLogger util.ErrorLogger) *NodeTable {
	return &NodeTable{
		mount:                mount,
		copyUpEngine:         copyUpEngine,
		inodeNumberGenerator: inodeNumberGenerator,
		errorLogger:          errorLogger,

		nextHandle: 1,
		nodes:      map[NodeHandle]*Node{},
		cache:      map[ObjectID]NodeHandle{},
	}
}

// shouldHashByLower decides whether the identity cache lookup for a
// node is keyed by the read-only origin object rather than the
// writable object. The order of these tests is significant.
func (nt *NodeTable) shouldHashByLower(upper, lower, index Object) (bool, Status) {
	// Pure writable object. Identity is intrinsic to the writable
	// object, there is no read-only state to deduplicate against.
	if lower == nil {
		return false, StatusOK
	}

	// Identity was already fixed when the index object was created.
	if index != nil {
		return true, StatusOK
	}

	// Read-only mount. Identity can only come from the read-only
	// side, as nothing will ever be copied up.
	if !nt.mount.options.HasWritableLayer {
		return true, StatusOK
	}

	// A hard-linked read-only object is, or will be, broken into
	// independent writable objects on copy-up unless the index area
	// tracks it. Its identity must not be deduplicated by the
	// read-only key.
	if upper != nil || !nt.mount.options.HasIndexDirectory {
		if lower.Kind() != filesystem.FileTypeDirectory {
			linkCount, s := objectLinkCount(lower, nt.mount.MounterCredentials())
			if s != StatusOK {
				return false, s
			}
			if linkCount > 1 {
				return false, StatusOK
			}
		}
	}

	// Exported handles must key on the writable object once the
	// node has been copied up, or handles encoded before and after
	// the copy-up would resolve to different objects.
	if nt.mount.options.ExportEnabled && upper != nil {
		return false, StatusOK
	}

	// Hash by the read-only object, so that change notifications
	// registered against the origin remain coherent across copy-up.
	return true, StatusOK
}

// GetNode returns the single logical node corresponding to a set of
// physical objects discovered by path resolution: the writable object,
// the read-only origin, and the index object, each of which may be
// absent. Concurrent calls for the same physical object yield the same
// node. If a cached node is found whose stored references contradict
// the provided ones, StatusErrStale is returned and the caller must
// re-resolve the path.
//
// The returned node carries a reference that must be dropped through
// Node.Release().
func (nt *NodeTable) GetNode(upper, lower, index Object) (*Node, Status) {
	if upper == nil && lower == nil {
		return nil, StatusErrInval
	}
	byLower, s := nt.shouldHashByLower(upper, lower, index)
	if s != StatusOK {
		return nil, s
	}

	if upper == nil && !byLower {
		// Read-only hard link whose identity will be broken on
		// copy-up. Deduplicating it against other aliases of
		// the same read-only object would pin them to a single
		// writable object they will not share. Construct an
		// uncached node instead.
		return nt.newNode(upper, lower, index, ObjectID{}, false)
	}

	keyObject := upper
	if byLower {
		keyObject = lower
	}
	key := keyObject.ID()

	nt.lock.Lock()
	for {
		handle, ok := nt.cache[key]
		if !ok {
			break
		}
		existing := nt.nodes[handle]
		select {
		case <-existing.constructed:
		default:
			// Another resolution of the same key is still
			// populating the node. Wait for it to finish and
			// reinspect the cache: construction may have
			// failed, removing the entry.
			nt.lock.Unlock()
			<-existing.constructed
			nt.lock.Lock()
			continue
		}
		if !existing.verifyLocked(upper, lower) {
			nt.lock.Unlock()
			return nil, StatusErrStale
		}
		// The writable object provided by the caller is
		// redundant with the one already owned by the node.
		existing.referenceCount++
		nt.lock.Unlock()
		return existing, StatusOK
	}
	nt.lock.Unlock()

	return nt.newNode(upper, lower, index, key, true)
}

// newNode allocates a node in the arena and populates its metadata.
// For cached nodes, the entry is published in an under-construction
// state first, so that the lookup-or-construct sequence has a single
// insertion point while the metadata population below may perform I/O
// against the underlying layers.
func (nt *NodeTable) newNode(upper, lower, index Object, key ObjectID, cached bool) (*Node, Status) {
	n := &Node{
		table:       nt,
		inodeNumber: nt.inodeNumberGenerator.Uint64(),
		cacheKey:    key,
		cached:      cached,
		indexed:     index != nil,
		constructed: make(chan struct{}),

		lower: lower,
		index: index,

		upper:          upper,
		referenceCount: 1,
	}

	nt.lock.Lock()
	if cached {
		if _, ok := nt.cache[key]; ok {
			// Lost a race against another construction of the
			// same key. Retry the full lookup.
			nt.lock.Unlock()
			return nt.GetNode(upper, lower, index)
		}
	}
	n.handle = nt.nextHandle
	nt.nextHandle++
	nt.nodes[n.handle] = n
	if cached {
		nt.cache[key] = n.handle
	}
	nt.lock.Unlock()

	if s := nt.populateNode(n, upper, lower, cached); s != StatusOK {
		nt.lock.Lock()
		delete(nt.nodes, n.handle)
		if cached {
			delete(nt.cache, key)
		}
		nt.lock.Unlock()
		close(n.constructed)
		return nil, s
	}
	close(n.constructed)
	return n, StatusOK
}

// populateNode fills the node's kind, cached ownership metadata and
// union link count from the representative physical object.
func (nt *NodeTable) populateNode(n *Node, upper, lower Object, cached bool) Status {
	representative := upper
	if representative == nil {
		representative = lower
	}
	creds := nt.mount.MounterCredentials()

	var attributes Attributes
	if s := representative.GetAttributes(
		creds,
		AttributesMaskFileType|AttributesMaskMode|AttributesMaskOwnerUserID|
			AttributesMaskOwnerGroupID|AttributesMaskLinkCount,
		&attributes); s != StatusOK {
		return s
	}

	n.kind = attributes.GetFileType()

	// Merged directories always report a link count of one at the
	// logical layer; counting subdirectories across layers is not
	// worth the effort, and nlink=1 satisfies tools that would
	// otherwise prune traversals early.
	linkCount := uint32(1)
	if n.kind != filesystem.FileTypeDirectory {
		linkCount = attributes.GetLinkCount()
		if cached {
			linkCount = nt.decodeLinkCount(lower, upper, linkCount)
		}
	}

	impure := false
	if upper != nil && n.kind == filesystem.FileTypeDirectory {
		// Best effort: a directory that cannot report the
		// marker is treated as pure.
		if value, s := upper.GetXattr(creds, impureXattr); s == StatusOK && len(value) > 0 {
			impure = true
		}
	}
	n.impure = impure

	mode, _ := attributes.GetMode()
	ownerUserID, _ := attributes.GetOwnerUserID()
	ownerGroupID, _ := attributes.GetOwnerGroupID()

	nt.lock.Lock()
	n.linkCount = linkCount
	n.mode = mode
	n.ownerUserID = ownerUserID
	n.ownerGroupID = ownerGroupID
	nt.lock.Unlock()
	return StatusOK
}
