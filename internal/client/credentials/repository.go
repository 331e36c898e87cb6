// Package credentials persists the authentication token and the minimal
// identity projection across client restarts. The durable medium is a
// local SQLite database with a single key-value table; every write hits
// the database synchronously. Values are opaque to this package: no
// validation, expiry, or encryption happens here.
package credentials

import (
	"context"
)

// Repository is the raw key-value contract over the durable medium.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
