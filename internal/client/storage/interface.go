package storage

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// SetMany upserts every pair atomically.
	SetMany(ctx context.Context, values map[string][]byte) error
	// DeleteMany removes every key atomically. Missing keys are ignored.
	DeleteMany(ctx context.Context, keys ...string) error
}
