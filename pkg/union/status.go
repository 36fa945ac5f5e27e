package union

// Status response of operations applied against Node and Object
// instances.
type Status int

const (
	// StatusOK indicates that the operation succeeded.
	StatusOK Status = iota
	// StatusErrAccess indicates that the operation failed due to
	// permission being denied.
	StatusErrAccess
	// StatusErrBadHandle indicates that the provided file handle
	// failed internal consistency checks.
	StatusErrBadHandle
	// StatusErrExist indicates that a file system object of the
	// specified target name already exists.
	StatusErrExist
	// StatusErrInval indicates that the arguments for this
	// operation are not valid.
	StatusErrInval
	// StatusErrIO indicates that the operation failed due to an I/O
	// error.
	StatusErrIO
	// StatusErrNoData indicates that an extended attribute with the
	// requested name is not present on the object.
	StatusErrNoData
	// StatusErrNoEnt indicates that the operation failed due to a
	// file not existing.
	StatusErrNoEnt
	// StatusErrNotSupported indicates that the underlying object or
	// layer does not implement the requested operation.
	StatusErrNotSupported
	// StatusErrPerm indicates that the operation was not allowed
	// because the caller is neither a privileged user nor the owner
	// of the target of the operation.
	StatusErrPerm
	// StatusErrROFS indicates that a modifying operation was
	// attempted while the mount does not permit writes.
	StatusErrROFS
	// StatusErrRetry indicates that no underlying object reference
	// could be resolved in a context that is not permitted to
	// block. The caller must retry the operation from a context
	// that may suspend.
	StatusErrRetry
	// StatusErrStale indicates that a node found in the identity
	// cache no longer matches the underlying objects discovered
	// through the current path. The caller must re-resolve the path
	// from scratch.
	StatusErrStale
)
