package health

import "context"

// CachePinger checks page cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// SourceChecker checks vacancy source availability.
type SourceChecker interface {
	HealthCheck(ctx context.Context) error
}

// StorageChecker checks the data directory.
type StorageChecker interface {
	Check(ctx context.Context) error
}
