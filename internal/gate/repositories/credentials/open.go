package credentials

import (
	"context"
	"fmt"
)

// Options selects and configures a backend.
type Options struct {
	Backend        string
	DataDir        string
	RedisURL       string
	RedisKeyPrefix string
}

// Open constructs the backend named by opts.Backend (sqlite when empty).
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		return NewSQLiteStore(ctx, opts.DataDir)
	case BackendFile:
		return NewFileStore(opts.DataDir)
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisURL, opts.RedisKeyPrefix)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
