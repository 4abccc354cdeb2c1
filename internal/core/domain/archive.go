package domain

// ExtractResult summarizes an extracted archive.
type ExtractResult struct {
	// Files is the number of regular files written.
	Files int

	// Bytes is the compressed size of the archive that was read.
	Bytes int64

	// Digest is the xxhash of the compressed archive, hex encoded.
	Digest string
}
