package ports

// Hasher defines the interface for computing content hashes.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeFileHash hashes the content of path. Directories are hashed recursively.
	ComputeFileHash(path string) (string, error)
}
