package db

import (
	"context"
	"time"
)

// Store is the persistence facade for cached resources.
type Store interface {
	Pinger
	KVStore
	Close()
}

// Pinger checks store availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
