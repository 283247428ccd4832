package ports

// Verifier checks that the files a transformer reported actually exist.
//
//go:generate mockgen -destination=mocks/verifier_mock.go -package=mocks -source=verifier.go
type Verifier interface {
	// VerifyOutputs reports whether every output exists. Relative outputs are resolved against root.
	VerifyOutputs(root string, outputs []string) (bool, error)
}
