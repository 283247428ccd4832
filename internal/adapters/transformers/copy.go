package transformers

import (
	"context"
	"path/filepath"

	"github.com/otiai10/copy"
	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/zerr"
)

// Copy copies its input, file or directory, into the workspace under the same base name.
type Copy struct {
	identity domain.TransformIdentity
}

// NewCopy creates a Copy transformer.
func NewCopy(spec domain.TransformSpec) *Copy {
	return &Copy{identity: identityOf(spec)}
}

// Identity returns the transformer identity.
func (c *Copy) Identity() domain.TransformIdentity {
	return c.identity
}

// Transform copies input to workspace/<base name of input>.
func (c *Copy) Transform(_ context.Context, input, workspace string) ([]string, error) {
	target := filepath.Join(workspace, filepath.Base(input))
	if err := copy.Copy(input, target, copy.Options{
		OnSymlink: func(string) copy.SymlinkAction { return copy.Deep },
	}); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "input", input)
	}
	return []string{target}, nil
}
