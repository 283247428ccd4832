package config

import "go.trai.ch/morph/internal/core/convention"

// Morphfile represents the structure of the morph.yaml pipeline file.
type Morphfile struct {
	Version    string                  `yaml:"version"`
	Transforms map[string]TransformDTO `yaml:"transforms"`
	Chains     map[string][]string     `yaml:"chains"`
	Artifacts  map[string]ArtifactDTO  `yaml:"artifacts"`
}

// TransformDTO represents a transform definition in the pipeline file.
type TransformDTO struct {
	Kind                 string                  `yaml:"kind"`
	Cmd                  []string                `yaml:"cmd"`
	Environment          map[string]string       `yaml:"environment"`
	Outputs              []string                `yaml:"outputs"`
	RequiresDependencies convention.Option[bool] `yaml:"requiresDependencies"`
}

// ArtifactDTO represents an artifact definition in the pipeline file.
type ArtifactDTO struct {
	Files     []string `yaml:"files"`
	Chain     string   `yaml:"chain"`
	DependsOn []string `yaml:"dependsOn"`
}
