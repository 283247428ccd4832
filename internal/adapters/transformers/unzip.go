package transformers

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/zerr"
)

// Unzip extracts a zip archive into its workspace.
type Unzip struct {
	identity domain.TransformIdentity
}

// NewUnzip creates an Unzip transformer.
func NewUnzip(spec domain.TransformSpec) *Unzip {
	return &Unzip{identity: identityOf(spec)}
}

// Identity returns the transformer identity.
func (u *Unzip) Identity() domain.TransformIdentity {
	return u.identity
}

// Transform extracts input below workspace and returns the workspace directory.
func (u *Unzip) Transform(ctx context.Context, input, workspace string) ([]string, error) {
	reader, err := zip.OpenReader(input)
	if errors.Is(err, zip.ErrInsecurePath) && reader != nil {
		// entries are checked one by one during extraction
		err = nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveExtractFailed.Error()), "archive", input)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, entry := range reader.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := extractEntry(entry, workspace); err != nil {
			return nil, zerr.With(err, "archive", input)
		}
	}

	return []string{workspace}, nil
}

func extractEntry(entry *zip.File, workspace string) error {
	target := filepath.Join(workspace, entry.Name) //nolint:gosec // checked below
	rel, err := filepath.Rel(workspace, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return zerr.With(domain.ErrArchiveEntryOutsideWorkspace, "entry", entry.Name)
	}

	if entry.FileInfo().IsDir() {
		if err := os.MkdirAll(target, domain.DirPerm); err != nil {
			return zerr.Wrap(err, domain.ErrArchiveExtractFailed.Error())
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveExtractFailed.Error())
	}

	src, err := entry.Open()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveExtractFailed.Error()), "entry", entry.Name)
	}
	defer func() {
		_ = src.Close()
	}()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveExtractFailed.Error()), "entry", entry.Name)
	}

	if _, err := io.Copy(dst, src); err != nil { //nolint:gosec // archive size is bounded by the input
		_ = dst.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveExtractFailed.Error()), "entry", entry.Name)
	}
	if err := dst.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveExtractFailed.Error()), "entry", entry.Name)
	}
	return nil
}
