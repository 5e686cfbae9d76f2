package manifest

// Manifest records the fixtures produced by a batch run.
type Manifest struct {
	Version     int                `json:"version"`
	GeneratedAt string             `json:"generated_at"`
	BasePath    string             `json:"base_path"`
	Fixtures    map[string]Fixture `json:"fixtures"` // keyed by path relative to the manifest
	Stats       Stats              `json:"stats"`
}

// Fixture is one generated image file.
type Fixture struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Color  string `json:"color"` // lowercase hex, no '#'
	Size   int64  `json:"size"`  // bytes on disk
	Hash   string `json:"hash"`  // 16 hex chars of xxhash64
}

// Stats aggregates batch metrics.
type Stats struct {
	TotalFixtures int   `json:"total_fixtures"`
	TotalBytes    int64 `json:"total_bytes"`
	TotalPixels   int64 `json:"total_pixels"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest written next to batch output.
const FileName = "pngfixture.manifest.json"
