package ports

import "go.trai.ch/morph/internal/core/domain"

// ResultStore persists transformer results across runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ResultStore interface {
	// Get retrieves the record stored under key.
	// Returns nil, nil if not found.
	Get(key string) (*domain.ResultRecord, error)

	// Put stores the record under key.
	Put(key string, record domain.ResultRecord) error
}
