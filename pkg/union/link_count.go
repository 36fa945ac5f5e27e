package union

import (
	"fmt"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// A link count delta record reconciles the union link count of a node
// with the link count of one of its physical objects. Its on-disk
// format is "U%+d" or "L%+d": a selector naming the base object
// (writable or read-only), followed by an explicitly signed decimal
// delta, stored in the reserved link count extended attribute on the
// writable (or index) object. The union link count is reconstructed as
// the base object's own link count plus the delta.
//
// A record is written immediately before any operation that changes
// the base object's own link count commits:
//
//   - Relative to the writable object before a hard link is created,
//     unlinked or renamed over on the writable layer, so that the
//     delta stays valid whether or not the mutation succeeds.
//   - Relative to the read-only object before a copy-up commits, so
//     that the delta is frozen against the object whose count the
//     copy-up is about to stop tracking.
const (
	linkCountRecordVsUpper = 'U'
	linkCountRecordVsLower = 'L'

	// maximumLinkCountRecordSizeBytes bounds the encoded record:
	// one selector letter, one sign, and at most ten decimal
	// digits.
	maximumLinkCountRecordSizeBytes = 12
)

// RecordLinkCountVsUpper persists the node's link count delta relative
// to the writable object. It must be called immediately before a
// mutation of the writable object's own link count commits.
func (n *Node) RecordLinkCountVsUpper() Status {
	upper, _ := n.references()
	return n.recordLinkCount(linkCountRecordVsUpper, upper)
}

// RecordLinkCountVsLower persists the node's link count delta relative
// to the read-only origin object. It must be called immediately before
// a copy-up of the node commits.
func (n *Node) RecordLinkCountVsLower() Status {
	_, lower := n.references()
	return n.recordLinkCount(linkCountRecordVsLower, lower)
}

func (n *Node) recordLinkCount(selector byte, base Object) Status {
	if base == nil {
		return StatusErrInval
	}
	creds := n.table.mount.MounterCredentials()
	baseLinkCount, s := objectLinkCount(base, creds)
	if s != StatusOK {
		return s
	}
	record := fmt.Sprintf("%c%+d", selector, int64(n.LinkCount())-int64(baseLinkCount))
	if len(record) > maximumLinkCountRecordSizeBytes {
		return StatusErrIO
	}

	target, _ := n.references()
	if target == nil {
		target = n.index
	}
	if target == nil {
		return StatusErrNoEnt
	}
	return target.SetXattr(creds, linkCountXattr, []byte(record), XattrSetDefault)
}

// decodeLinkCount reconstructs the union link count of an object pair
// from a previously persisted delta record. If either object is absent
// or the read-only object carries a single link, no aliasing is
// possible and the fallback count is returned without consulting a
// record. Reconciliation is best effort: any malformed record yields
// the fallback count and a diagnostic on the table's error logger,
// never a hard failure.
func (nt *NodeTable) decodeLinkCount(lower, upper Object, fallback uint32) uint32 {
	if lower == nil || upper == nil {
		return fallback
	}
	creds := nt.mount.MounterCredentials()
	lowerLinkCount, s := objectLinkCount(lower, creds)
	if s != StatusOK || lowerLinkCount == 1 {
		return fallback
	}

	record, s := upper.GetXattr(creds, linkCountXattr)
	if s != StatusOK {
		nt.reportMalformedLinkCountRecord(upper, "Failed to read link count record")
		return fallback
	}
	if len(record) < 3 || len(record) > maximumLinkCountRecordSizeBytes {
		nt.reportMalformedLinkCountRecord(upper, "Link count record has invalid length")
		return fallback
	}
	if record[0] != linkCountRecordVsUpper && record[0] != linkCountRecordVsLower {
		nt.reportMalformedLinkCountRecord(upper, "Link count record has invalid base selector")
		return fallback
	}
	if record[1] != '+' && record[1] != '-' {
		nt.reportMalformedLinkCountRecord(upper, "Link count record has invalid sign")
		return fallback
	}
	delta, err := strconv.ParseInt(string(record[1:]), 10, 32)
	if err != nil {
		nt.reportMalformedLinkCountRecord(upper, "Link count record has invalid delta")
		return fallback
	}

	baseLinkCount := lowerLinkCount
	if record[0] == linkCountRecordVsUpper {
		if baseLinkCount, s = objectLinkCount(upper, creds); s != StatusOK {
			nt.reportMalformedLinkCountRecord(upper, "Failed to get link count of the writable object")
			return fallback
		}
	}
	linkCount := int64(baseLinkCount) + delta
	if linkCount <= 0 {
		nt.reportMalformedLinkCountRecord(upper, "Link count record yields a non-positive count")
		return fallback
	}
	return uint32(linkCount)
}

func (nt *NodeTable) reportMalformedLinkCountRecord(upper Object, message string) {
	id := upper.ID()
	nt.errorLogger.Log(status.Errorf(codes.Internal, "%s on object %d:%d; using the physical link count instead", message, id.Device, id.Inode))
}
