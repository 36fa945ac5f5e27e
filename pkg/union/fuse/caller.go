//go:build darwin || linux
// +build darwin linux

package fuse

import (
	"syscall"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/stratumfs/stratumfs/pkg/union"
)

// allCapabilities is granted to requests issued by the superuser.
const allCapabilities = union.CapabilityAdministrator |
	union.CapabilityChangeOwner |
	union.CapabilityFileOwner |
	union.CapabilityPermissionOverride |
	union.CapabilityReadSearchOverride

// CallerCredentials converts the identity attached to an incoming FUSE
// request to the credentials model used by the union layer. FUSE only
// transmits the primary user and group IDs of the caller, so
// supplementary groups are not taken into account.
func CallerCredentials(caller *fuse.Caller) union.Credentials {
	var capabilities union.Capabilities
	if caller.Uid == 0 {
		capabilities = allCapabilities
	}
	return union.NewCredentials(caller.Uid, caller.Gid, capabilities)
}

// AccessMaskFromOpenFlags derives the access that an open request with
// the given flags needs against a node, along with whether the open
// truncates the file.
func AccessMaskFromOpenFlags(flags uint32) (union.AccessMask, bool) {
	var mask union.AccessMask
	switch flags & syscall.O_ACCMODE {
	case syscall.O_RDONLY:
		mask = union.AccessMaskRead
	case syscall.O_WRONLY:
		mask = union.AccessMaskWrite
	case syscall.O_RDWR:
		mask = union.AccessMaskRead | union.AccessMaskWrite
	}
	if flags&syscall.O_APPEND != 0 {
		mask |= union.AccessMaskAppend
	}
	return mask, flags&syscall.O_TRUNC != 0
}
