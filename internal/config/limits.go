package config

// Upload and analysis limits.
const (
	// MaxUploadBytes caps one request body (all pages combined).
	MaxUploadBytes = 25 << 20

	// MaxPagesPerDocument caps how many page images may be stitched into
	// one composite.
	MaxPagesPerDocument = 10

	// MaxFilenameLength caps generated and user-edited filenames.
	MaxFilenameLength = 200

	// MaxFolderDepth caps the number of folder path segments.
	MaxFolderDepth = 8
)
