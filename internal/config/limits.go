package config

import "time"

// Resource limits and policy constants.
const (
	// MaxItemNameLength bounds file and folder display names
	MaxItemNameLength = 255

	// MaxTreeDepth bounds breadcrumb resolution and subtree cascades.
	// Exceeding it means a cycle in the parent chain.
	MaxTreeDepth = 1000

	// RecentViewLimit is the number of items the recent view returns
	RecentViewLimit = 10

	// MaxUploadBytes caps a single multipart upload
	MaxUploadBytes = 100 << 20 // 100 MB

	// DefaultStorageQuotaBytes is the per-user quota reported by the usage
	// endpoint when STORAGE_QUOTA_BYTES is unset
	DefaultStorageQuotaBytes = 15 << 30 // 15 GiB

	// SignedURLTTL is the lifetime of presigned download URLs
	SignedURLTTL = 15 * time.Minute

	// RequestTimeout bounds a single request against the backing stores
	RequestTimeout = 30 * time.Second
)
