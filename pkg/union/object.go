package union

import (
	"strings"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
)

// ObjectID uniquely identifies a physical object within the set of
// layers backing a mount. Two Object instances that refer to the same
// physical object must report the same ObjectID, even if they were
// obtained through different paths.
type ObjectID struct {
	Device uint64
	Inode  uint64
}

// XattrSetFlags alter the behavior of Object.SetXattr.
type XattrSetFlags int

const (
	// XattrSetDefault creates the attribute if absent and replaces
	// it if present.
	XattrSetDefault XattrSetFlags = iota
	// XattrSetCreate fails with StatusErrExist if the attribute is
	// already present.
	XattrSetCreate
	// XattrSetReplace fails with StatusErrNoData if the attribute
	// is not present.
	XattrSetReplace
)

// Object is a physical file system object stored in one of the layers
// backing a union mount: the writable layer, one of the read-only
// layers, or the index area of the writable layer.
//
// All methods take the credentials with which the access is performed
// explicitly. The union layer passes the mount owner's credentials
// when delegating operations, so that permission checks against the
// underlying layers happen on behalf of the party that configured the
// mount, not the calling task.
type Object interface {
	// ID returns the stable identity of the physical object, used
	// as the key of the node identity cache.
	ID() ObjectID
	// Kind returns the file type of the object.
	Kind() filesystem.FileType

	GetAttributes(creds Credentials, requested AttributesMask, attributes *Attributes) Status
	SetAttributes(creds Credentials, in *Attributes, requested AttributesMask) Status
	CheckAccess(creds Credentials, mask AccessMask) Status
	Readlink(creds Credentials) ([]byte, Status)

	GetXattr(creds Credentials, name string) ([]byte, Status)
	SetXattr(creds Credentials, name string, value []byte, flags XattrSetFlags) Status
	RemoveXattr(creds Credentials, name string) Status
	ListXattrs(creds Credentials) ([]string, Status)
}

const (
	// internalXattrPrefix is the reserved namespace in which this
	// layer persists its own bookkeeping attributes on underlying
	// objects. Attributes in this namespace are never shown to
	// callers, regardless of privilege.
	internalXattrPrefix = "trusted.overlay."
	// privilegedXattrPrefix is the namespace that is only visible
	// to callers carrying CapabilityAdministrator.
	privilegedXattrPrefix = "trusted."

	// linkCountXattr stores the encoded link count delta record.
	linkCountXattr = internalXattrPrefix + "nlink"
	// impureXattr marks a writable directory whose entries are a
	// mix of natively created and copied up entries.
	impureXattr = internalXattrPrefix + "impure"
)

// IsInternalXattr returns whether an extended attribute name lies in
// the reserved namespace that this layer uses for its own bookkeeping.
func IsInternalXattr(name string) bool {
	return strings.HasPrefix(name, internalXattrPrefix)
}

// isSpecialFileType returns whether a file type denotes a device, FIFO
// or socket. Objects of these types are never copied up; opening them
// reaches the underlying object directly.
func isSpecialFileType(fileType filesystem.FileType) bool {
	switch fileType {
	case filesystem.FileTypeBlockDevice, filesystem.FileTypeCharacterDevice,
		filesystem.FileTypeFIFO, filesystem.FileTypeSocket:
		return true
	default:
		return false
	}
}

// objectLinkCount fetches the hard link count of a physical object.
func objectLinkCount(o Object, creds Credentials) (uint32, Status) {
	var attributes Attributes
	if s := o.GetAttributes(creds, AttributesMaskLinkCount, &attributes); s != StatusOK {
		return 0, s
	}
	return attributes.GetLinkCount(), StatusOK
}
