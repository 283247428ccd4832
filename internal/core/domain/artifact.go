package domain

// Artifact is a resolved dependency whose files are fed through a transformation chain.
// It uses InternedString for names that are repeated across the dependency graph.
type Artifact struct {
	Name         InternedString
	Files        []string
	Chain        InternedString
	Dependencies []InternedString
}
