package union

import (
	"context"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
)

// CheckAccess determines whether the caller may access the node with
// the requested access mask. The check happens in two stages: first a
// generic permission check against the logical node with the caller's
// own credentials, then a delegated check against the backing object
// with the mount owner's credentials. Write access on a node that has
// not been copied up yet is downgraded to read access for the
// delegated check, as the copy-up that a write would trigger only
// needs to read the origin.
func (n *Node) CheckAccess(ctx context.Context, creds Credentials, mask AccessMask) Status {
	upper, lower := n.references()
	real := upper
	if real == nil {
		real = lower
	}
	if real == nil {
		// Only reachable while the node is still being torn down.
		// Callers that may not block should retry in a context
		// that can wait for construction to settle.
		return StatusErrRetry
	}

	if s := n.checkGenericAccess(creds, mask); s != StatusOK {
		return s
	}

	delegated := mask &^ AccessMaskDontBlock
	if upper == nil && !isSpecialFileType(n.kind) && mask&AccessMaskWrite != 0 {
		delegated = (delegated &^ (AccessMaskWrite | AccessMaskAppend)) | AccessMaskRead
	}
	return real.CheckAccess(n.table.mount.MounterCredentials(), delegated)
}

// checkGenericAccess performs a plain owner/group/other permission
// check against the node's cached logical mode and ownership,
// including the standard capability overrides.
func (n *Node) checkGenericAccess(creds Credentials, mask AccessMask) Status {
	mode, ownerUserID, ownerGroupID := n.logicalOwnership()
	granted := mode.permissionsForClass(
		creds.UserID() == ownerUserID,
		creds.IsMemberOfGroup(ownerGroupID))
	want := mask & (AccessMaskRead | AccessMaskWrite | AccessMaskExecute)
	if want&^granted == 0 {
		return StatusOK
	}

	isDirectory := n.kind == filesystem.FileTypeDirectory
	if creds.HasCapability(CapabilityPermissionOverride) {
		// Executing a file still requires at least one execute
		// bit to be set somewhere in its mode.
		if want&AccessMaskExecute == 0 || isDirectory || mode&0o111 != 0 {
			return StatusOK
		}
	}
	if creds.HasCapability(CapabilityReadSearchOverride) {
		if isDirectory {
			if want&AccessMaskWrite == 0 {
				return StatusOK
			}
		} else if want == AccessMaskRead {
			return StatusOK
		}
	}
	return StatusErrAccess
}
