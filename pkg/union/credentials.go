package union

// Capabilities is a bitmask of privileges that a set of credentials
// may carry, modeled after the POSIX capability bits that are relevant
// to this layer.
type Capabilities uint32

const (
	// CapabilityAdministrator corresponds to CAP_SYS_ADMIN. It is
	// required to observe extended attributes in the privileged
	// "trusted." namespace.
	CapabilityAdministrator Capabilities = 1 << iota
	// CapabilityChangeOwner corresponds to CAP_CHOWN. It permits
	// changing the ownership of files arbitrarily.
	CapabilityChangeOwner
	// CapabilityFileOwner corresponds to CAP_FOWNER. It permits
	// operations that are normally restricted to the owner of a
	// file, such as changing its mode or timestamps.
	CapabilityFileOwner
	// CapabilityPermissionOverride corresponds to CAP_DAC_OVERRIDE.
	// It bypasses read, write and execute permission checks.
	CapabilityPermissionOverride
	// CapabilityReadSearchOverride corresponds to
	// CAP_DAC_READ_SEARCH. It bypasses read permission checks and
	// directory search permission checks.
	CapabilityReadSearchOverride
)

// Credentials of the party on whose behalf an operation against an
// underlying object is performed. Operations against underlying
// objects never rely on ambient (thread or process wide) privilege
// state. The caller's credentials are used for checks against the
// logical node, while the mount owner's credentials are passed to the
// underlying layers explicitly.
type Credentials struct {
	userID                uint32
	groupID               uint32
	supplementaryGroupIDs []uint32
	capabilities          Capabilities
}

// NewCredentials creates a set of credentials for a given user and
// primary group.
func NewCredentials(userID, groupID uint32, capabilities Capabilities) Credentials {
	return Credentials{
		userID:       userID,
		groupID:      groupID,
		capabilities: capabilities,
	}
}

// WithSupplementaryGroupIDs returns a copy of the credentials that is
// also a member of the provided groups.
func (c Credentials) WithSupplementaryGroupIDs(groupIDs []uint32) Credentials {
	c.supplementaryGroupIDs = groupIDs
	return c
}

// UserID returns the user ID of the credentials.
func (c Credentials) UserID() uint32 {
	return c.userID
}

// GroupID returns the primary group ID of the credentials.
func (c Credentials) GroupID() uint32 {
	return c.groupID
}

// HasCapability returns whether the credentials carry a given
// capability.
func (c Credentials) HasCapability(capability Capabilities) bool {
	return c.capabilities&capability != 0
}

// IsMemberOfGroup returns whether the credentials belong to a given
// group, either as the primary group or through a supplementary group
// membership.
func (c Credentials) IsMemberOfGroup(groupID uint32) bool {
	if c.groupID == groupID {
		return true
	}
	for _, supplementaryGroupID := range c.supplementaryGroupIDs {
		if supplementaryGroupID == groupID {
			return true
		}
	}
	return false
}
