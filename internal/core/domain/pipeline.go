package domain

// TransformSpec is the declarative definition of a transformer.
type TransformSpec struct {
	Name                 string
	Kind                 string
	Command              []string
	Environment          map[string]string
	Outputs              []string
	RequiresDependencies bool
}

// Pipeline is a loaded pipeline definition: the transforms, the chains composing them,
// and the graph of artifacts to resolve.
type Pipeline struct {
	Transforms map[string]TransformSpec
	Chains     map[string][]string
	Graph      *Graph
}

// NewPipeline creates an empty pipeline with an empty artifact graph.
func NewPipeline() *Pipeline {
	return &Pipeline{
		Transforms: make(map[string]TransformSpec),
		Chains:     make(map[string][]string),
		Graph:      NewGraph(),
	}
}
