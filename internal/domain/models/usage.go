package models

// CategoryUsage is the per-bucket portion of a storage usage breakdown.
// Color is the chart color the dashboard renders the bucket with.
type CategoryUsage struct {
	Category string `json:"category"`
	Bytes    int64  `json:"bytes"`
	Color    string `json:"color"`
}

// StorageUsage aggregates the owner's non-trashed file sizes.
type StorageUsage struct {
	UsedBytes   int64           `json:"used_bytes"`
	TotalBytes  int64           `json:"total_bytes"`
	FileCount   int             `json:"file_count"`
	FolderCount int             `json:"folder_count"`
	Breakdown   []CategoryUsage `json:"breakdown"`
}
