package union

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// File handles consist of the mount's UUID followed by the identity of
// the node's origin object, so that a handle can be matched against
// the mount that issued it before any decoding happens.
const fileHandleSizeBytes = 16 + 8 + 8

// EncodeFileHandle returns a stable, opaque handle for a node that can
// be resolved again after the node has been evicted, as long as the
// mount keeps the same UUID. Anonymous nodes have no stable identity
// and cannot be encoded.
func (nt *NodeTable) EncodeFileHandle(n *Node) ([]byte, Status) {
	if !nt.mount.options.ExportEnabled {
		return nil, StatusErrNotSupported
	}
	if !n.cached {
		return nil, StatusErrNotSupported
	}
	u := nt.mount.UUID()
	fileHandle := make([]byte, 0, fileHandleSizeBytes)
	fileHandle = append(fileHandle, u[:]...)
	fileHandle = binary.LittleEndian.AppendUint64(fileHandle, n.cacheKey.Device)
	fileHandle = binary.LittleEndian.AppendUint64(fileHandle, n.cacheKey.Inode)
	return fileHandle, StatusOK
}

// ResolveFileHandle looks up the live node corresponding to a
// previously encoded file handle, acquiring a reference to it. Handles
// issued by another mount generation are reported as stale, as are
// handles whose node is no longer resident; re-instantiating evicted
// nodes requires a directory walk through the index, which is the
// caller's responsibility.
func (nt *NodeTable) ResolveFileHandle(fileHandle []byte) (*Node, Status) {
	if !nt.mount.options.ExportEnabled {
		return nil, StatusErrNotSupported
	}
	if len(fileHandle) != fileHandleSizeBytes {
		return nil, StatusErrBadHandle
	}
	var u uuid.UUID
	copy(u[:], fileHandle)
	if u != nt.mount.UUID() {
		return nil, StatusErrStale
	}
	key := ObjectID{
		Device: binary.LittleEndian.Uint64(fileHandle[16:]),
		Inode:  binary.LittleEndian.Uint64(fileHandle[24:]),
	}

	nt.lock.Lock()
	for {
		handle, ok := nt.cache[key]
		if !ok {
			nt.lock.Unlock()
			return nil, StatusErrStale
		}
		n := nt.nodes[handle]
		select {
		case <-n.constructed:
			n.referenceCount++
			nt.lock.Unlock()
			return n, StatusOK
		default:
			nt.lock.Unlock()
			<-n.constructed
			nt.lock.Lock()
		}
	}
}
