package union

// Mode contains the lower twelve permission bits of a file's mode: the
// read, write and execute permissions for the owner, group and other
// classes, together with the set-user-ID, set-group-ID and sticky
// bits. The file type bits are tracked separately, as
// filesystem.FileType.
type Mode uint16

const (
	// ModeSetUserID is the set-user-ID bit.
	ModeSetUserID Mode = 0o4000
	// ModeSetGroupID is the set-group-ID bit.
	ModeSetGroupID Mode = 0o2000
	// ModeSticky is the sticky bit.
	ModeSticky Mode = 0o1000
)

// NewModeFromRaw creates a Mode from the lower bits of a raw st_mode
// value, discarding the file type bits.
func NewModeFromRaw(rawMode uint32) Mode {
	return Mode(rawMode & 0o7777)
}

// ToRaw converts the mode back to the representation used by st_mode.
func (m Mode) ToRaw() uint32 {
	return uint32(m)
}

// permissionsForClass extracts the read/write/execute bits that apply
// to a caller, based on whether the caller is the owner of the file, a
// member of its group, or neither.
func (m Mode) permissionsForClass(isOwner, isGroupMember bool) AccessMask {
	var shift uint
	switch {
	case isOwner:
		shift = 6
	case isGroupMember:
		shift = 3
	}
	bits := (m >> shift) & 0o7
	var mask AccessMask
	if bits&0o4 != 0 {
		mask |= AccessMaskRead
	}
	if bits&0o2 != 0 {
		mask |= AccessMaskWrite
	}
	if bits&0o1 != 0 {
		mask |= AccessMaskExecute
	}
	return mask
}
