package union_test

import (
	"context"
	"testing"

	"github.com/stratumfs/stratumfs/internal/mock"
	"github.com/stratumfs/stratumfs/pkg/union"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMetricsCopyUpEngine(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	baseEngine := mock.NewMockCopyUpEngine(ctrl)
	engine := union.NewMetricsCopyUpEngine(baseEngine)

	// The decorator must pass results through unaltered.
	baseEngine.EXPECT().CopyUp(ctx, nil).Return(union.StatusOK)
	require.Equal(t, union.StatusOK, engine.CopyUp(ctx, nil))

	baseEngine.EXPECT().CopyUpWithAccess(ctx, nil, union.AccessMaskWrite, true).Return(union.StatusErrIO)
	require.Equal(t, union.StatusErrIO, engine.CopyUpWithAccess(ctx, nil, union.AccessMaskWrite, true))
}
