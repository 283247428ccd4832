// Package config loads the morph pipeline definition and runtime settings.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// KindCommand is the transform kind assumed when a definition only declares a command.
const KindCommand = "command"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML pipeline file.
type Loader struct {
	// Filename is the pipeline file name searched for from the working directory upwards.
	// An absolute path is loaded as is.
	Filename string
	resolver ports.InputResolver
	logger   ports.Logger
}

// NewLoader creates a Loader for domain.PipelineFileName.
func NewLoader(resolver ports.InputResolver, logger ports.Logger) *Loader {
	return &Loader{
		Filename: domain.PipelineFileName,
		resolver: resolver,
		logger:   logger,
	}
}

// Load finds the pipeline file from cwd upwards and loads it.
func (l *Loader) Load(cwd string) (*domain.Pipeline, error) {
	if filepath.IsAbs(l.Filename) {
		return l.LoadFile(l.Filename)
	}

	path, err := findFile(cwd, l.Filename)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(path)
}

// LoadFile reads the pipeline file at path. Artifact files are resolved relative to
// the directory containing it.
func (l *Loader) LoadFile(path string) (*domain.Pipeline, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var morphfile Morphfile
	if err := yaml.Unmarshal(data, &morphfile); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	root := filepath.Dir(path)
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	pipeline := domain.NewPipeline()
	pipeline.Graph.SetRoot(root)

	if err := l.loadTransforms(pipeline, morphfile.Transforms); err != nil {
		return nil, err
	}
	if err := loadChains(pipeline, morphfile.Chains); err != nil {
		return nil, err
	}
	if err := l.loadArtifacts(pipeline, morphfile.Artifacts, root); err != nil {
		return nil, err
	}
	if err := pipeline.Graph.Validate(); err != nil {
		return nil, err
	}

	l.logger.Info("Loaded pipeline from " + path)
	return pipeline, nil
}

func (l *Loader) loadTransforms(pipeline *domain.Pipeline, transforms map[string]TransformDTO) error {
	for name, dto := range transforms {
		kind := dto.Kind
		if kind == "" && len(dto.Cmd) > 0 {
			kind = KindCommand
		}
		if kind == "" {
			return zerr.With(domain.ErrInvalidTransformSpec, "transform", name)
		}

		pipeline.Transforms[name] = domain.TransformSpec{
			Name:                 name,
			Kind:                 kind,
			Command:              dto.Cmd,
			Environment:          dto.Environment,
			Outputs:              canonicalizeStrings(dto.Outputs),
			RequiresDependencies: dto.RequiresDependencies.OrElse(false),
		}
	}
	return nil
}

func loadChains(pipeline *domain.Pipeline, chains map[string][]string) error {
	for name, steps := range chains {
		if len(steps) == 0 {
			return zerr.With(domain.ErrEmptyChain, "chain", name)
		}
		for _, step := range steps {
			if _, ok := pipeline.Transforms[step]; !ok {
				err := zerr.With(domain.ErrTransformNotFound, "chain", name)
				return zerr.With(err, "transform", step)
			}
		}
		pipeline.Chains[name] = slices.Clone(steps)
	}
	return nil
}

func (l *Loader) loadArtifacts(pipeline *domain.Pipeline, artifacts map[string]ArtifactDTO, root string) error {
	for name, dto := range artifacts {
		if name == "all" {
			return zerr.With(domain.ErrReservedArtifactName, "artifact", name)
		}

		for _, dep := range dto.DependsOn {
			if _, ok := artifacts[dep]; !ok {
				err := zerr.With(domain.ErrMissingDependency, "artifact", name)
				return zerr.With(err, "dependency", dep)
			}
		}

		if dto.Chain != "" {
			if _, ok := pipeline.Chains[dto.Chain]; !ok {
				err := zerr.With(domain.ErrChainNotFound, "artifact", name)
				return zerr.With(err, "chain", dto.Chain)
			}
		}

		var files []string
		if len(dto.Files) > 0 {
			resolved, err := l.resolver.ResolveInputs(dto.Files, root)
			if err != nil {
				return zerr.With(err, "artifact", name)
			}
			files = resolved
		}

		artifact := &domain.Artifact{
			Name:         domain.NewInternedString(name),
			Files:        files,
			Dependencies: domain.NewInternedStrings(dto.DependsOn),
		}
		if dto.Chain != "" {
			artifact.Chain = domain.NewInternedString(dto.Chain)
		}
		if err := pipeline.Graph.AddArtifact(artifact); err != nil {
			return err
		}
	}
	return nil
}

// findFile walks from dir up to the filesystem root looking for name.
func findFile(dir, name string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", dir)
	}

	for {
		candidate := filepath.Join(current, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", candidate)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", zerr.With(zerr.Wrap(fs.ErrNotExist, domain.ErrConfigReadFailed.Error()), "path", filepath.Join(dir, name))
		}
		current = parent
	}
}

// canonicalizeStrings sorts and deduplicates strs.
func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}
	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
