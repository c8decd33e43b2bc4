package ports

import "context"

// HealthChecker verifies connectivity to a backing dependency.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}
