package union

import (
	"context"
	"time"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
)

// GetAttributes projects the attributes of the best available
// physical object into the union view.
//
// When all layers share the same underlying storage, the reported
// device number is rewritten to the mount's own, and the inode number
// of nodes with a tracked origin is rewritten to the origin's whenever
// that is unambiguous (directories, single-link origins, or indexed
// nodes). This keeps the reported device and inode pair stable across
// copy-up, and across mount cycles when file handle export is enabled.
// When layers are on different storage, directories report the mount's
// synthetic device and inode numbers instead, so that traversals that
// prune on device boundaries see a single consistent file system.
func (n *Node) GetAttributes(ctx context.Context, requested AttributesMask, attributes *Attributes) Status {
	m := n.table.mount
	creds := m.MounterCredentials()
	upper, lower := n.references()
	real := upper
	if real == nil {
		real = lower
	}
	if s := real.GetAttributes(creds, requested, attributes); s != StatusOK {
		return s
	}

	isDirectory := n.kind == filesystem.FileTypeDirectory
	if m.options.SameFilesystem {
		if lower != nil && requested&AttributesMaskInodeNumber != 0 {
			lowerMask := AttributesMaskInodeNumber
			if !isDirectory {
				lowerMask |= AttributesMaskLinkCount
			}
			var lowerAttributes Attributes
			if s := lower.GetAttributes(creds, lowerMask, &lowerAttributes); s != StatusOK {
				return s
			}
			// A hard-linked origin may be broken into multiple
			// writable objects by copy-up, so its inode number
			// only identifies this node if the index area
			// validates the link, or no aliasing is possible.
			if isDirectory || lowerAttributes.GetLinkCount() == 1 || n.indexed {
				attributes.SetInodeNumber(lowerAttributes.GetInodeNumber())
			}
		}
		if requested&AttributesMaskDeviceNumber != 0 {
			attributes.SetDeviceNumber(m.DeviceNumber())
		}
	} else if isDirectory {
		if requested&AttributesMaskDeviceNumber != 0 {
			attributes.SetDeviceNumber(m.DeviceNumber())
		}
		if requested&AttributesMaskInodeNumber != 0 {
			attributes.SetInodeNumber(n.inodeNumber)
		}
	}

	if requested&AttributesMaskLinkCount != 0 {
		if isDirectory {
			if lower != nil {
				attributes.SetLinkCount(1)
			}
		} else if n.indexed {
			attributes.SetLinkCount(n.LinkCount())
		}
	}
	return StatusOK
}

// SetAttributes applies size, mode, ownership or timestamp changes to
// the node. Setting attributes always requires a writable object, so a
// copy-up is triggered unconditionally; the caller's permission to
// perform the change is validated first, to prevent unprivileged
// callers from triggering copy-ups that the delegate would reject
// anyway.
func (n *Node) SetAttributes(ctx context.Context, creds Credentials, in *Attributes, requested AttributesMask) Status {
	if s := n.checkSetAttributesAllowed(creds, in, requested); s != StatusOK {
		return s
	}
	m := n.table.mount
	if s := m.WantWrite(); s != StatusOK {
		return s
	}
	defer m.DropWrite()

	if s := n.table.copyUpEngine.CopyUp(ctx, n); s != StatusOK {
		return s
	}

	// When the set-user-ID or set-group-ID bits are cleared as a
	// side effect of the requested change, the delegate computes
	// the resulting mode itself; an explicit mode in the same
	// request must not override it.
	if requested&(AttributesMaskKillSetUserID|AttributesMaskKillSetGroupID) != 0 {
		requested &^= AttributesMaskMode
	}

	n.upperLock.Lock()
	defer n.upperLock.Unlock()
	upper, _ := n.references()
	if upper == nil {
		panic("Copy-up engine reported success without attaching a writable object")
	}
	if s := upper.SetAttributes(m.MounterCredentials(), in, requested); s != StatusOK {
		return s
	}
	n.refreshMetadata(upper)
	return StatusOK
}

// TouchAccessTime propagates an access time update to the writable
// object. Access times of read-only objects are left alone.
func (n *Node) TouchAccessTime(ctx context.Context, when time.Time) Status {
	upper, _ := n.references()
	if upper == nil {
		return StatusOK
	}
	var in Attributes
	in.SetLastAccessTime(when)
	n.upperLock.Lock()
	defer n.upperLock.Unlock()
	return upper.SetAttributes(n.table.mount.MounterCredentials(), &in, AttributesMaskLastAccessTime)
}

// checkSetAttributesAllowed validates a set-attributes request against
// the logical node with the caller's own credentials. The delegate
// revalidates against the writable object with the mount owner's
// credentials afterwards.
func (n *Node) checkSetAttributesAllowed(creds Credentials, in *Attributes, requested AttributesMask) Status {
	_, ownerUserID, ownerGroupID := n.logicalOwnership()
	isOwner := creds.UserID() == ownerUserID

	if requested&AttributesMaskMode != 0 {
		if !isOwner && !creds.HasCapability(CapabilityFileOwner) {
			return StatusErrPerm
		}
		// Setting the set-group-ID bit on a file whose group the
		// caller does not belong to is silently suppressed.
		if newMode, ok := in.GetMode(); ok && newMode&ModeSetGroupID != 0 &&
			!creds.IsMemberOfGroup(ownerGroupID) && !creds.HasCapability(CapabilityFileOwner) {
			in.SetMode(newMode &^ ModeSetGroupID)
		}
	}
	if requested&AttributesMaskOwnerUserID != 0 {
		newOwnerUserID, _ := in.GetOwnerUserID()
		if !creds.HasCapability(CapabilityChangeOwner) && !(isOwner && newOwnerUserID == ownerUserID) {
			return StatusErrPerm
		}
	}
	if requested&AttributesMaskOwnerGroupID != 0 {
		newOwnerGroupID, _ := in.GetOwnerGroupID()
		if !creds.HasCapability(CapabilityChangeOwner) && !(isOwner && creds.IsMemberOfGroup(newOwnerGroupID)) {
			return StatusErrPerm
		}
	}
	if requested&AttributesMaskSizeBytes != 0 {
		if s := n.checkGenericAccess(creds, AccessMaskWrite); s != StatusOK {
			return s
		}
	}
	if requested&(AttributesMaskLastAccessTime|AttributesMaskLastDataModificationTime) != 0 {
		if !isOwner && !creds.HasCapability(CapabilityFileOwner) {
			return StatusErrPerm
		}
	}
	return StatusOK
}

// refreshMetadata updates the node's cached logical metadata from the
// writable object after a successful mutation. Best effort: if the
// fetch fails, the previous metadata is kept.
func (n *Node) refreshMetadata(upper Object) {
	var attributes Attributes
	if s := upper.GetAttributes(
		n.table.mount.MounterCredentials(),
		AttributesMaskMode|AttributesMaskOwnerUserID|AttributesMaskOwnerGroupID,
		&attributes); s != StatusOK {
		return
	}
	mode, _ := attributes.GetMode()
	ownerUserID, _ := attributes.GetOwnerUserID()
	ownerGroupID, _ := attributes.GetOwnerGroupID()

	nt := n.table
	nt.lock.Lock()
	n.mode = mode
	n.ownerUserID = ownerUserID
	n.ownerGroupID = ownerGroupID
	nt.lock.Unlock()
}
