package tracking

import "context"

// Reporter receives progress updates for assembly runs.
type Reporter interface {
	OnChange(ctx context.Context, status Status) error
}
