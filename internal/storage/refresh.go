package storage

import (
	"context"
	"time"

	"github.com/yourname/fitplanner/internal"
)

// Refresher is implemented by catalogs that can re-read their source.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshEvery calls r.Refresh every interval until ctx is done. A failed
// refresh is logged and the previous snapshot keeps serving.
func RefreshEvery(ctx context.Context, r Refresher, interval time.Duration, logger internal.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				logger.Warnf("storage: catalog refresh failed: %v", err)
			}
		}
	}
}

var (
	_ Refresher = (*S3Catalog)(nil)
	_ Refresher = (*FileStorage)(nil)
)
