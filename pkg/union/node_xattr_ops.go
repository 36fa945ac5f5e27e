package union

import (
	"context"
	"strings"
)

// GetXattr reads an extended attribute from the best available
// physical object. Reads are delegated with the mount owner's
// credentials; the caller's access to the node itself has already been
// checked at lookup or open time.
func (n *Node) GetXattr(ctx context.Context, name string) ([]byte, Status) {
	return n.representative().GetXattr(n.table.mount.MounterCredentials(), name)
}

// SetXattr writes an extended attribute, copying the node up first if
// needed. Attributes in the union's own internal namespace cannot be
// set through the logical view, as that would corrupt layer metadata.
func (n *Node) SetXattr(ctx context.Context, name string, value []byte, flags XattrSetFlags) Status {
	if IsInternalXattr(name) {
		return StatusErrPerm
	}
	m := n.table.mount
	if s := m.WantWrite(); s != StatusOK {
		return s
	}
	defer m.DropWrite()

	if s := n.table.copyUpEngine.CopyUp(ctx, n); s != StatusOK {
		return s
	}
	n.upperLock.Lock()
	defer n.upperLock.Unlock()
	upper, _ := n.references()
	if upper == nil {
		panic("Copy-up engine reported success without attaching a writable object")
	}
	return upper.SetXattr(m.MounterCredentials(), name, value, flags)
}

// RemoveXattr removes an extended attribute. If the node has not been
// copied up yet, the attribute's existence on the origin is checked
// first, so that removing a nonexistent attribute fails without
// triggering a copy-up.
func (n *Node) RemoveXattr(ctx context.Context, name string) Status {
	if IsInternalXattr(name) {
		return StatusErrPerm
	}
	m := n.table.mount
	if s := m.WantWrite(); s != StatusOK {
		return s
	}
	defer m.DropWrite()

	upper, lower := n.references()
	if upper == nil {
		if _, s := lower.GetXattr(m.MounterCredentials(), name); s != StatusOK {
			return s
		}
		if s := n.table.copyUpEngine.CopyUp(ctx, n); s != StatusOK {
			return s
		}
		upper, _ = n.references()
		if upper == nil {
			panic("Copy-up engine reported success without attaching a writable object")
		}
	}
	n.upperLock.Lock()
	defer n.upperLock.Unlock()
	return upper.RemoveXattr(m.MounterCredentials(), name)
}

// ListXattrs lists extended attribute names, hiding the union's
// internal namespace from everyone and the remainder of the privileged
// namespace from callers without administrator rights.
func (n *Node) ListXattrs(ctx context.Context, creds Credentials) ([]string, Status) {
	names, s := n.representative().ListXattrs(n.table.mount.MounterCredentials())
	if s != StatusOK {
		return nil, s
	}
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if canListXattr(name, creds) {
			filtered = append(filtered, name)
		}
	}
	return filtered, StatusOK
}

func canListXattr(name string, creds Credentials) bool {
	if !strings.HasPrefix(name, privilegedXattrPrefix) {
		return true
	}
	return !IsInternalXattr(name) && creds.HasCapability(CapabilityAdministrator)
}
