//go:build darwin || linux
// +build darwin linux

package fuse

import (
	"syscall"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/stratumfs/stratumfs/pkg/union"
)

// AttributesMaskForFUSEAttr is the attributes mask to use for
// Node.GetAttributes() to populate all relevant fields of fuse.Attr.
const AttributesMaskForFUSEAttr = union.AttributesMaskDeviceNumber |
	union.AttributesMaskFileType |
	union.AttributesMaskInodeNumber |
	union.AttributesMaskLastAccessTime |
	union.AttributesMaskLastDataModificationTime |
	union.AttributesMaskLinkCount |
	union.AttributesMaskMode |
	union.AttributesMaskOwnerGroupID |
	union.AttributesMaskOwnerUserID |
	union.AttributesMaskRawDeviceNumber |
	union.AttributesMaskSizeBytes

// ToFUSEStatus converts a union layer status to a FUSE status code.
func ToFUSEStatus(s union.Status) fuse.Status {
	switch s {
	case union.StatusOK:
		return fuse.OK
	case union.StatusErrAccess:
		return fuse.EACCES
	case union.StatusErrBadHandle:
		return fuse.EBADF
	case union.StatusErrExist:
		return fuse.Status(syscall.EEXIST)
	case union.StatusErrInval:
		return fuse.EINVAL
	case union.StatusErrIO:
		return fuse.EIO
	case union.StatusErrNoData:
		return fuse.Status(syscall.ENODATA)
	case union.StatusErrNoEnt:
		return fuse.ENOENT
	case union.StatusErrNotSupported:
		return fuse.Status(syscall.EOPNOTSUPP)
	case union.StatusErrPerm:
		return fuse.EPERM
	case union.StatusErrROFS:
		return fuse.EROFS
	case union.StatusErrRetry:
		return fuse.EAGAIN
	case union.StatusErrStale:
		return fuse.Status(syscall.ESTALE)
	default:
		panic("Unknown status")
	}
}

func toFUSEFileType(fileType filesystem.FileType) uint32 {
	switch fileType {
	case filesystem.FileTypeBlockDevice:
		return syscall.S_IFBLK
	case filesystem.FileTypeCharacterDevice:
		return syscall.S_IFCHR
	case filesystem.FileTypeDirectory:
		return syscall.S_IFDIR
	case filesystem.FileTypeFIFO:
		return syscall.S_IFIFO
	case filesystem.FileTypeRegularFile:
		return syscall.S_IFREG
	case filesystem.FileTypeSocket:
		return syscall.S_IFSOCK
	case filesystem.FileTypeSymlink:
		return syscall.S_IFLNK
	default:
		panic("Unknown file type")
	}
}

// PopulateAttr converts attributes requested through
// AttributesMaskForFUSEAttr to a fuse.Attr structure.
func PopulateAttr(attributes *union.Attributes, out *fuse.Attr) {
	if rawDeviceNumber, ok := attributes.GetRawDeviceNumber(); ok {
		out.Rdev = uint32(rawDeviceNumber.ToRaw())
	}

	out.Ino = attributes.GetInodeNumber()
	out.Nlink = attributes.GetLinkCount()
	out.Mode = toFUSEFileType(attributes.GetFileType())

	if lastAccessTime, ok := attributes.GetLastAccessTime(); ok {
		nanos := lastAccessTime.UnixNano()
		out.Atime = uint64(nanos / 1e9)
		out.Atimensec = uint32(nanos % 1e9)
	}
	if lastDataModificationTime, ok := attributes.GetLastDataModificationTime(); ok {
		nanos := lastDataModificationTime.UnixNano()
		out.Mtime = uint64(nanos / 1e9)
		out.Mtimensec = uint32(nanos % 1e9)
	}

	mode, ok := attributes.GetMode()
	if !ok {
		panic("Attributes do not contain mandatory mode attribute")
	}
	out.Mode |= mode.ToRaw()

	if ownerUserID, ok := attributes.GetOwnerUserID(); ok {
		out.Owner.Uid = ownerUserID
	}
	if ownerGroupID, ok := attributes.GetOwnerGroupID(); ok {
		out.Owner.Gid = ownerGroupID
	}

	if sizeBytes, ok := attributes.GetSizeBytes(); ok {
		out.Size = sizeBytes
	}
}
