package union

import (
	"time"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
)

// AttributesMask is a bitmask of status attributes that need to be
// requested through Node.GetAttributes() or Object.GetAttributes(),
// or that are provided to a set-attributes operation.
type AttributesMask uint32

const (
	// AttributesMaskDeviceNumber requests the number of the device
	// containing the object (st_dev).
	AttributesMaskDeviceNumber AttributesMask = 1 << iota
	// AttributesMaskFileType requests the file type (upper 4 bits
	// of st_mode).
	AttributesMaskFileType
	// AttributesMaskInodeNumber requests the inode number (st_ino).
	AttributesMaskInodeNumber
	// AttributesMaskLastAccessTime requests the last access time
	// (st_atim).
	AttributesMaskLastAccessTime
	// AttributesMaskLastDataModificationTime requests the last data
	// modification time (st_mtim).
	AttributesMaskLastDataModificationTime
	// AttributesMaskLinkCount requests the hard link count
	// (st_nlink).
	AttributesMaskLinkCount
	// AttributesMaskMode requests the permission bits (lowest 12
	// bits of st_mode).
	AttributesMaskMode
	// AttributesMaskOwnerGroupID requests the group ID of the owner
	// (st_gid).
	AttributesMaskOwnerGroupID
	// AttributesMaskOwnerUserID requests the user ID of the owner
	// (st_uid).
	AttributesMaskOwnerUserID
	// AttributesMaskRawDeviceNumber requests the raw device number
	// of character and block devices (st_rdev).
	AttributesMaskRawDeviceNumber
	// AttributesMaskSizeBytes requests the file size (st_size).
	AttributesMaskSizeBytes

	// AttributesMaskKillSetUserID indicates that a set-attributes
	// operation must clear the set-user-ID bit as a side effect of
	// another change. It is only valid in set-attributes requests.
	AttributesMaskKillSetUserID
	// AttributesMaskKillSetGroupID indicates that a set-attributes
	// operation must clear the set-group-ID bit as a side effect of
	// another change. It is only valid in set-attributes requests.
	AttributesMaskKillSetGroupID
)

// Attributes of a file, normally requested through stat() or applied
// through chmod(), chown(), truncate() or utimensat(). A bitmask is
// used to track which attributes are set.
type Attributes struct {
	fieldsPresent AttributesMask

	deviceNumber             filesystem.DeviceNumber
	fileType                 filesystem.FileType
	inodeNumber              uint64
	lastAccessTime           time.Time
	lastDataModificationTime time.Time
	linkCount                uint32
	mode                     Mode
	ownerGroupID             uint32
	ownerUserID              uint32
	rawDeviceNumber          filesystem.DeviceNumber
	sizeBytes                uint64
}

// GetDeviceNumber returns the number of the device containing the
// object (st_dev).
func (a *Attributes) GetDeviceNumber() (filesystem.DeviceNumber, bool) {
	return a.deviceNumber, a.fieldsPresent&AttributesMaskDeviceNumber != 0
}

// SetDeviceNumber sets the number of the device containing the object
// (st_dev).
func (a *Attributes) SetDeviceNumber(deviceNumber filesystem.DeviceNumber) *Attributes {
	a.deviceNumber = deviceNumber
	a.fieldsPresent |= AttributesMaskDeviceNumber
	return a
}

// GetFileType returns the file type (upper 4 bits of st_mode).
func (a *Attributes) GetFileType() filesystem.FileType {
	if a.fieldsPresent&AttributesMaskFileType == 0 {
		panic("The file type attribute is mandatory, meaning it should be set when requested")
	}
	return a.fileType
}

// SetFileType sets the file type (upper 4 bits of st_mode).
func (a *Attributes) SetFileType(fileType filesystem.FileType) *Attributes {
	a.fileType = fileType
	a.fieldsPresent |= AttributesMaskFileType
	return a
}

// GetInodeNumber returns the inode number (st_ino).
func (a *Attributes) GetInodeNumber() uint64 {
	if a.fieldsPresent&AttributesMaskInodeNumber == 0 {
		panic("The inode number attribute is mandatory, meaning it should be set when requested")
	}
	return a.inodeNumber
}

// SetInodeNumber sets the inode number (st_ino).
func (a *Attributes) SetInodeNumber(inodeNumber uint64) *Attributes {
	a.inodeNumber = inodeNumber
	a.fieldsPresent |= AttributesMaskInodeNumber
	return a
}

// GetLastAccessTime returns the last access time (st_atim).
func (a *Attributes) GetLastAccessTime() (time.Time, bool) {
	return a.lastAccessTime, a.fieldsPresent&AttributesMaskLastAccessTime != 0
}

// SetLastAccessTime sets the last access time (st_atim).
func (a *Attributes) SetLastAccessTime(lastAccessTime time.Time) *Attributes {
	a.lastAccessTime = lastAccessTime
	a.fieldsPresent |= AttributesMaskLastAccessTime
	return a
}

// GetLastDataModificationTime returns the last data modification time
// (st_mtim).
func (a *Attributes) GetLastDataModificationTime() (time.Time, bool) {
	return a.lastDataModificationTime, a.fieldsPresent&AttributesMaskLastDataModificationTime != 0
}

// SetLastDataModificationTime sets the last data modification time
// (st_mtim).
func (a *Attributes) SetLastDataModificationTime(lastDataModificationTime time.Time) *Attributes {
	a.lastDataModificationTime = lastDataModificationTime
	a.fieldsPresent |= AttributesMaskLastDataModificationTime
	return a
}

// GetLinkCount returns the hard link count (st_nlink).
func (a *Attributes) GetLinkCount() uint32 {
	if a.fieldsPresent&AttributesMaskLinkCount == 0 {
		panic("The link count attribute is mandatory, meaning it should be set when requested")
	}
	return a.linkCount
}

// SetLinkCount sets the hard link count (st_nlink).
func (a *Attributes) SetLinkCount(linkCount uint32) *Attributes {
	a.linkCount = linkCount
	a.fieldsPresent |= AttributesMaskLinkCount
	return a
}

// GetMode returns the permission bits (lowest 12 bits of st_mode).
func (a *Attributes) GetMode() (Mode, bool) {
	return a.mode, a.fieldsPresent&AttributesMaskMode != 0
}

// SetMode sets the permission bits (lowest 12 bits of st_mode).
func (a *Attributes) SetMode(mode Mode) *Attributes {
	a.mode = mode
	a.fieldsPresent |= AttributesMaskMode
	return a
}

// GetOwnerGroupID returns the group ID of the owner (st_gid).
func (a *Attributes) GetOwnerGroupID() (uint32, bool) {
	return a.ownerGroupID, a.fieldsPresent&AttributesMaskOwnerGroupID != 0
}

// SetOwnerGroupID sets the group ID of the owner (st_gid).
func (a *Attributes) SetOwnerGroupID(ownerGroupID uint32) *Attributes {
	a.ownerGroupID = ownerGroupID
	a.fieldsPresent |= AttributesMaskOwnerGroupID
	return a
}

// GetOwnerUserID returns the user ID of the owner (st_uid).
func (a *Attributes) GetOwnerUserID() (uint32, bool) {
	return a.ownerUserID, a.fieldsPresent&AttributesMaskOwnerUserID != 0
}

// SetOwnerUserID sets the user ID of the owner (st_uid).
func (a *Attributes) SetOwnerUserID(ownerUserID uint32) *Attributes {
	a.ownerUserID = ownerUserID
	a.fieldsPresent |= AttributesMaskOwnerUserID
	return a
}

// GetRawDeviceNumber returns the raw device number of character and
// block devices (st_rdev).
func (a *Attributes) GetRawDeviceNumber() (filesystem.DeviceNumber, bool) {
	return a.rawDeviceNumber, a.fieldsPresent&AttributesMaskRawDeviceNumber != 0
}

// SetRawDeviceNumber sets the raw device number of character and block
// devices (st_rdev).
func (a *Attributes) SetRawDeviceNumber(rawDeviceNumber filesystem.DeviceNumber) *Attributes {
	a.rawDeviceNumber = rawDeviceNumber
	a.fieldsPresent |= AttributesMaskRawDeviceNumber
	return a
}

// GetSizeBytes returns the file size (st_size).
func (a *Attributes) GetSizeBytes() (uint64, bool) {
	return a.sizeBytes, a.fieldsPresent&AttributesMaskSizeBytes != 0
}

// SetSizeBytes sets the file size (st_size).
func (a *Attributes) SetSizeBytes(sizeBytes uint64) *Attributes {
	a.sizeBytes = sizeBytes
	a.fieldsPresent |= AttributesMaskSizeBytes
	return a
}
