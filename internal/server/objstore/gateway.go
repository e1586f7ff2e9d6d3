// Package objstore abstracts the external object storage behind a small
// put/delete/URL-resolve gateway. Access control is not enforced here; the
// file service decides who may reach a key before the gateway is invoked.
package objstore

import (
	"context"
	"io"
)

// Gateway is the file service's view of blob storage.
type Gateway interface {
	// Put writes the object. The caller must not create a registry row unless
	// Put succeeded: object write happens-before metadata insert.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error

	// Delete removes the object, best-effort. Callers may tolerate failure;
	// an orphaned object is acceptable, a dangling registry row is not.
	Delete(ctx context.Context, key string) error

	// PublicURL deterministically resolves the externally reachable URL for a
	// key. Pure string construction, no network call.
	PublicURL(key string) string
}
