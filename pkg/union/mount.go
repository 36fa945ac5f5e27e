package union

import (
	"github.com/buildbarn/bb-storage/pkg/filesystem"
	"github.com/google/uuid"

	re_sync "github.com/stratumfs/stratumfs/pkg/sync"
)

// MountOptions describe the static configuration of a union mount, as
// established when the mount is created.
type MountOptions struct {
	// DeviceNumber is the device number under which the union view
	// presents itself (st_dev of the mount).
	DeviceNumber filesystem.DeviceNumber
	// UUID identifies this mount instance. It is embedded in
	// exported file handles, so that handles obtained from another
	// mount are detected as stale.
	UUID uuid.UUID
	// MounterCredentials are the credentials of the party that
	// configured the mount. All delegated operations against
	// underlying objects are performed with these credentials.
	MounterCredentials Credentials
	// HasWritableLayer is false for mounts that consist of
	// read-only layers only. Such mounts never copy objects up.
	HasWritableLayer bool
	// HasIndexDirectory is true if the writable layer carries a
	// reserved index area that anchors identity and link count
	// state of hard-linked and copied up objects.
	HasIndexDirectory bool
	// SameFilesystem is true if all layers are backed by the same
	// underlying storage, making physical inode numbers unique
	// across layers.
	SameFilesystem bool
	// ExportEnabled is true if the mount hands out file handles
	// that must remain resolvable across mount cycles.
	ExportEnabled bool
}

// Mount holds the runtime state of a union mount that is shared by all
// of its nodes: the static options and the write intent gate through
// which every mutating operation must pass.
type Mount struct {
	options   MountOptions
	writeGate *re_sync.WriteGate
}

// NewMount creates a Mount with no active writers.
func NewMount(options *MountOptions) *Mount {
	return &Mount{
		options:   *options,
		writeGate: re_sync.NewWriteGate(),
	}
}

// MounterCredentials returns the credentials with which delegated
// operations against underlying objects are performed.
func (m *Mount) MounterCredentials() Credentials {
	return m.options.MounterCredentials
}

// DeviceNumber returns the device number of the union view.
func (m *Mount) DeviceNumber() filesystem.DeviceNumber {
	return m.options.DeviceNumber
}

// UUID returns the identity of this mount instance.
func (m *Mount) UUID() uuid.UUID {
	return m.options.UUID
}

// WantWrite declares the intent to mutate the writable layer. It must
// be paired with a call to DropWrite() on every exit path. It fails
// with StatusErrROFS if the mount is frozen or has no writable layer.
func (m *Mount) WantWrite() Status {
	if !m.options.HasWritableLayer {
		return StatusErrROFS
	}
	if !m.writeGate.Acquire() {
		return StatusErrROFS
	}
	return StatusOK
}

// DropWrite releases a previously declared write intent.
func (m *Mount) DropWrite() {
	m.writeGate.Release()
}

// Freeze excludes new writers from the mount and waits for active ones
// to finish.
func (m *Mount) Freeze() {
	m.writeGate.Freeze()
}

// Unfreeze admits writers to the mount once again.
func (m *Mount) Unfreeze() {
	m.writeGate.Unfreeze()
}
