package union

// AccessMask is a bitmask of the kinds of access that an operation
// requests on a node or underlying object.
type AccessMask uint8

const (
	// AccessMaskRead requests permission to read file contents or
	// list directory entries.
	AccessMaskRead AccessMask = 1 << iota
	// AccessMaskWrite requests permission to modify file contents
	// or directory entries.
	AccessMaskWrite
	// AccessMaskExecute requests permission to execute a file or
	// traverse a directory.
	AccessMaskExecute
	// AccessMaskAppend requests permission to append to a file. It
	// is only meaningful in combination with AccessMaskWrite.
	AccessMaskAppend
	// AccessMaskDontBlock indicates that the check is performed
	// from a context that is not permitted to suspend. Checks that
	// would need to consult state that is not immediately available
	// must fail with StatusErrRetry instead of blocking.
	AccessMaskDontBlock
)
