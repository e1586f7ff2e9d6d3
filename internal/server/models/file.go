package models

import "time"

// File describes server-side metadata for an uploaded object. The bytes
// themselves live in object storage under StorageKey.
type File struct {
	// ID is the internal sequential primary key. It is never serialized and
	// never appears in a URL.
	ID int64
	// PublicID is the random identifier used in every API path. Knowing it is
	// the sharing capability, so it must not be guessable or enumerable.
	PublicID string
	// UserID is the owner of the file.
	UserID string

	// Filename is the original client-supplied name, kept for display only.
	Filename string
	// StorageKey is the object-storage key of the blob. Unique, generated,
	// decoupled from Filename.
	StorageKey string
	// Tags are user-supplied labels, order preserved.
	Tags []string

	// ViewCount counts public fetches. Monotone, advisory telemetry.
	ViewCount int64
	UploadedAt time.Time
}
