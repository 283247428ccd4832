package ports

// InputResolver expands artifact file patterns into concrete paths.
//
//go:generate mockgen -destination=mocks/resolver_mock.go -package=mocks -source=resolver.go
type InputResolver interface {
	// ResolveInputs resolves the given patterns relative to root. Each literal path or
	// glob must match at least one file.
	ResolveInputs(inputs []string, root string) ([]string, error)
}
