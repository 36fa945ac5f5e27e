package local

import (
	"time"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
	"github.com/buildbarn/bb-storage/pkg/util"
	"github.com/stratumfs/stratumfs/pkg/union"

	"golang.org/x/sys/unix"
)

type localObject struct {
	path string
	id   union.ObjectID
	kind filesystem.FileType
}

// NewObject creates an Object backed by a path on a locally mounted
// file system. The path is resolved on every operation, so the object
// remains usable when the file is replaced in place, but turns stale
// when it is unlinked.
//
// The Credentials arguments of the Object interface are accepted for
// interface compatibility only. Operations on local file systems are
// always performed with the credentials of the calling process;
// callers that need per-user enforcement get it from the logical
// permission checks in the union layer.
func NewObject(path string) (union.Object, error) {
	var stat unix.Stat_t
	if err := unix.Lstat(path, &stat); err != nil {
		return nil, util.StatusWrapf(err, "Failed to stat %#v", path)
	}
	return &localObject{
		path: path,
		id: union.ObjectID{
			Device: uint64(stat.Dev),
			Inode:  stat.Ino,
		},
		kind: fileTypeFromMode(stat.Mode),
	}, nil
}

func fileTypeFromMode(mode uint32) filesystem.FileType {
	switch mode & unix.S_IFMT {
	case unix.S_IFDIR:
		return filesystem.FileTypeDirectory
	case unix.S_IFLNK:
		return filesystem.FileTypeSymlink
	case unix.S_IFBLK:
		return filesystem.FileTypeBlockDevice
	case unix.S_IFCHR:
		return filesystem.FileTypeCharacterDevice
	case unix.S_IFIFO:
		return filesystem.FileTypeFIFO
	case unix.S_IFSOCK:
		return filesystem.FileTypeSocket
	default:
		return filesystem.FileTypeRegularFile
	}
}

func statusFromErrno(err error) union.Status {
	switch err {
	case unix.EACCES:
		return union.StatusErrAccess
	case unix.EEXIST:
		return union.StatusErrExist
	case unix.EINVAL:
		return union.StatusErrInval
	case unix.ENODATA:
		return union.StatusErrNoData
	case unix.ENOENT:
		return union.StatusErrNoEnt
	case unix.ENOTSUP:
		return union.StatusErrNotSupported
	case unix.EPERM:
		return union.StatusErrPerm
	case unix.EROFS:
		return union.StatusErrROFS
	case unix.ESTALE:
		return union.StatusErrStale
	default:
		return union.StatusErrIO
	}
}

func (o *localObject) ID() union.ObjectID {
	return o.id
}

func (o *localObject) Kind() filesystem.FileType {
	return o.kind
}

func (o *localObject) GetAttributes(creds union.Credentials, requested union.AttributesMask, attributes *union.Attributes) union.Status {
	var stat unix.Stat_t
	if err := unix.Lstat(o.path, &stat); err != nil {
		return statusFromErrno(err)
	}
	if requested&union.AttributesMaskDeviceNumber != 0 {
		attributes.SetDeviceNumber(filesystem.NewDeviceNumberFromRaw(uint64(stat.Dev)))
	}
	if requested&union.AttributesMaskFileType != 0 {
		attributes.SetFileType(fileTypeFromMode(stat.Mode))
	}
	if requested&union.AttributesMaskInodeNumber != 0 {
		attributes.SetInodeNumber(stat.Ino)
	}
	if requested&union.AttributesMaskLastAccessTime != 0 {
		attributes.SetLastAccessTime(time.Unix(stat.Atim.Sec, stat.Atim.Nsec))
	}
	if requested&union.AttributesMaskLastDataModificationTime != 0 {
		attributes.SetLastDataModificationTime(time.Unix(stat.Mtim.Sec, stat.Mtim.Nsec))
	}
	if requested&union.AttributesMaskLinkCount != 0 {
		attributes.SetLinkCount(uint32(stat.Nlink))
	}
	if requested&union.AttributesMaskMode != 0 {
		attributes.SetMode(union.NewModeFromRaw(stat.Mode))
	}
	if requested&union.AttributesMaskOwnerGroupID != 0 {
		attributes.SetOwnerGroupID(stat.Gid)
	}
	if requested&union.AttributesMaskOwnerUserID != 0 {
		attributes.SetOwnerUserID(stat.Uid)
	}
	if requested&union.AttributesMaskRawDeviceNumber != 0 {
		attributes.SetRawDeviceNumber(filesystem.NewDeviceNumberFromRaw(uint64(stat.Rdev)))
	}
	if requested&union.AttributesMaskSizeBytes != 0 {
		attributes.SetSizeBytes(uint64(stat.Size))
	}
	return union.StatusOK
}

func (o *localObject) SetAttributes(creds union.Credentials, in *union.Attributes, requested union.AttributesMask) union.Status {
	if sizeBytes, ok := in.GetSizeBytes(); requested&union.AttributesMaskSizeBytes != 0 && ok {
		if err := unix.Truncate(o.path, int64(sizeBytes)); err != nil {
			return statusFromErrno(err)
		}
	}
	if requested&(union.AttributesMaskOwnerUserID|union.AttributesMaskOwnerGroupID) != 0 {
		ownerUserID := -1
		if v, ok := in.GetOwnerUserID(); requested&union.AttributesMaskOwnerUserID != 0 && ok {
			ownerUserID = int(v)
		}
		ownerGroupID := -1
		if v, ok := in.GetOwnerGroupID(); requested&union.AttributesMaskOwnerGroupID != 0 && ok {
			ownerGroupID = int(v)
		}
		if err := unix.Lchown(o.path, ownerUserID, ownerGroupID); err != nil {
			return statusFromErrno(err)
		}
	}
	if s := o.applyMode(in, requested); s != union.StatusOK {
		return s
	}
	if requested&(union.AttributesMaskLastAccessTime|union.AttributesMaskLastDataModificationTime) != 0 {
		times := []unix.Timespec{
			{Nsec: unix.UTIME_OMIT},
			{Nsec: unix.UTIME_OMIT},
		}
		if t, ok := in.GetLastAccessTime(); requested&union.AttributesMaskLastAccessTime != 0 && ok {
			times[0] = unix.NsecToTimespec(t.UnixNano())
		}
		if t, ok := in.GetLastDataModificationTime(); requested&union.AttributesMaskLastDataModificationTime != 0 && ok {
			times[1] = unix.NsecToTimespec(t.UnixNano())
		}
		if err := unix.UtimesNanoAt(unix.AT_FDCWD, o.path, times, unix.AT_SYMLINK_NOFOLLOW); err != nil {
			return statusFromErrno(err)
		}
	}
	return union.StatusOK
}

// applyMode handles both explicit mode changes and the implicit
// clearing of the set-user-ID and set-group-ID bits. Symbolic links
// carry no permission bits on Linux, so mode changes on them are
// ignored.
func (o *localObject) applyMode(in *union.Attributes, requested union.AttributesMask) union.Status {
	if o.kind == filesystem.FileTypeSymlink {
		return union.StatusOK
	}
	if mode, ok := in.GetMode(); requested&union.AttributesMaskMode != 0 && ok {
		if err := unix.Chmod(o.path, mode.ToRaw()); err != nil {
			return statusFromErrno(err)
		}
		return union.StatusOK
	}
	if requested&(union.AttributesMaskKillSetUserID|union.AttributesMaskKillSetGroupID) != 0 {
		var stat unix.Stat_t
		if err := unix.Lstat(o.path, &stat); err != nil {
			return statusFromErrno(err)
		}
		mode := union.NewModeFromRaw(stat.Mode)
		newMode := mode
		if requested&union.AttributesMaskKillSetUserID != 0 {
			newMode &^= union.ModeSetUserID
		}
		// The set-group-ID bit without group execute permission
		// denotes mandatory locking, not privilege, and is kept.
		if requested&union.AttributesMaskKillSetGroupID != 0 && mode&0o10 != 0 {
			newMode &^= union.ModeSetGroupID
		}
		if newMode != mode {
			if err := unix.Chmod(o.path, newMode.ToRaw()); err != nil {
				return statusFromErrno(err)
			}
		}
	}
	return union.StatusOK
}

func (o *localObject) CheckAccess(creds union.Credentials, mask union.AccessMask) union.Status {
	var mode uint32
	if mask&union.AccessMaskRead != 0 {
		mode |= unix.R_OK
	}
	if mask&(union.AccessMaskWrite|union.AccessMaskAppend) != 0 {
		mode |= unix.W_OK
	}
	if mask&union.AccessMaskExecute != 0 {
		mode |= unix.X_OK
	}
	if err := unix.Faccessat(unix.AT_FDCWD, o.path, mode, unix.AT_EACCESS); err != nil {
		return statusFromErrno(err)
	}
	return union.StatusOK
}

func (o *localObject) Readlink(creds union.Credentials) ([]byte, union.Status) {
	if o.kind != filesystem.FileTypeSymlink {
		return nil, union.StatusErrInval
	}
	for bufferSize := 256; ; bufferSize *= 2 {
		buffer := make([]byte, bufferSize)
		n, err := unix.Readlink(o.path, buffer)
		if err != nil {
			return nil, statusFromErrno(err)
		}
		if n < bufferSize {
			return buffer[:n], union.StatusOK
		}
	}
}

func (o *localObject) GetXattr(creds union.Credentials, name string) ([]byte, union.Status) {
	for {
		size, err := unix.Lgetxattr(o.path, name, nil)
		if err != nil {
			return nil, statusFromErrno(err)
		}
		buffer := make([]byte, size)
		n, err := unix.Lgetxattr(o.path, name, buffer)
		if err == unix.ERANGE {
			continue
		}
		if err != nil {
			return nil, statusFromErrno(err)
		}
		return buffer[:n], union.StatusOK
	}
}

func (o *localObject) SetXattr(creds union.Credentials, name string, value []byte, flags union.XattrSetFlags) union.Status {
	var rawFlags int
	switch flags {
	case union.XattrSetCreate:
		rawFlags = unix.XATTR_CREATE
	case union.XattrSetReplace:
		rawFlags = unix.XATTR_REPLACE
	}
	if err := unix.Lsetxattr(o.path, name, value, rawFlags); err != nil {
		return statusFromErrno(err)
	}
	return union.StatusOK
}

func (o *localObject) RemoveXattr(creds union.Credentials, name string) union.Status {
	if err := unix.Lremovexattr(o.path, name); err != nil {
		return statusFromErrno(err)
	}
	return union.StatusOK
}

func (o *localObject) ListXattrs(creds union.Credentials) ([]string, union.Status) {
	for {
		size, err := unix.Llistxattr(o.path, nil)
		if err != nil {
			return nil, statusFromErrno(err)
		}
		buffer := make([]byte, size)
		n, err := unix.Llistxattr(o.path, buffer)
		if err == unix.ERANGE {
			continue
		}
		if err != nil {
			return nil, statusFromErrno(err)
		}
		var names []string
		for start := 0; start < n; {
			end := start
			for buffer[end] != 0 {
				end++
			}
			names = append(names, string(buffer[start:end]))
			start = end + 1
		}
		return names, union.StatusOK
	}
}

var _ union.Object = (*localObject)(nil)
