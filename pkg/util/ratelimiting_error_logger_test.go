package util_test

import (
	"testing"
	"time"

	"github.com/buildbarn/bb-storage/pkg/clock"
	"github.com/stratumfs/stratumfs/internal/mock"
	"github.com/stratumfs/stratumfs/pkg/util"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRateLimitingErrorLogger(t *testing.T) {
	ctrl := gomock.NewController(t)

	// With a burst of two and a negligible refill rate, only the
	// first two messages get through.
	baseLogger := mock.NewMockErrorLogger(ctrl)
	errorLogger := util.NewRateLimitingErrorLogger(
		baseLogger,
		rate.NewLimiter(rate.Every(time.Hour), 2),
		clock.SystemClock)

	err := status.Error(codes.Internal, "Disk on fire")
	baseLogger.EXPECT().Log(err).Times(2)
	for i := 0; i < 5; i++ {
		errorLogger.Log(err)
	}
}
