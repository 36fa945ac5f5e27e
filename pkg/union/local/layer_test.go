package local_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stratumfs/stratumfs/pkg/union"
	"github.com/stratumfs/stratumfs/pkg/union/local"
	"github.com/stretchr/testify/require"
)

func TestLayerResolve(t *testing.T) {
	rootPath := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(rootPath, "work/a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(rootPath, "work/a/data"), []byte("contents"), 0o644))
	layer := local.NewLayer(rootPath)

	t.Run("Success", func(t *testing.T) {
		o, err := layer.Resolve("work/a/data")
		require.NoError(t, err)

		var attributes union.Attributes
		require.Equal(t, union.StatusOK, o.GetAttributes(union.NewCredentials(1000, 1000, 0), union.AttributesMaskSizeBytes, &attributes))
		sizeBytes, ok := attributes.GetSizeBytes()
		require.True(t, ok)
		require.Equal(t, uint64(8), sizeBytes)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := layer.Resolve("work/a/missing")
		require.Error(t, err)
	})

	t.Run("EscapesRoot", func(t *testing.T) {
		_, err := layer.Resolve("../outside")
		require.Error(t, err)

		_, err = layer.Resolve("/etc/passwd")
		require.Error(t, err)
	})
}
