package ports

// Hasher defines the interface for fingerprinting files.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash returns a content hash of the file at path.
	ComputeFileHash(path string) (uint64, error)
}
