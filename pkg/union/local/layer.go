package local

import (
	"path/filepath"
	"strings"

	"github.com/stratumfs/stratumfs/pkg/union"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Layer provides access to the objects stored below the root directory
// of one layer of a mount, such as its writable layer or its index
// area.
type Layer struct {
	rootPath string
}

// NewLayer creates a Layer rooted at a directory on a locally mounted
// file system.
func NewLayer(rootPath string) *Layer {
	return &Layer{rootPath: filepath.Clean(rootPath)}
}

// Resolve opens the object stored at a relative path below the layer
// root. Paths escaping the root are rejected, as layer contents must
// not alias objects on other layers.
func (l *Layer) Resolve(name string) (union.Object, error) {
	name = filepath.Clean(name)
	if filepath.IsAbs(name) || name == ".." || strings.HasPrefix(name, "../") {
		return nil, status.Errorf(codes.InvalidArgument, "Path %#v is outside the layer", name)
	}
	return NewObject(filepath.Join(l.rootPath, name))
}
