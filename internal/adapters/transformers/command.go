package transformers

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/morph/internal/adapters/fs"
	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/core/ports"
	"go.trai.ch/zerr"
)

// Placeholders expanded in command arguments.
const (
	InputPlaceholder  = "{input}"
	OutputPlaceholder = "{output}"
)

// Environment variables exported to commands.
const (
	EnvInput  = "MORPH_INPUT"
	EnvOutput = "MORPH_OUTPUT"
)

// Command runs an external command once per input file.
type Command struct {
	spec     domain.TransformSpec
	identity domain.TransformIdentity
	logger   ports.Logger
	walker   *fs.Walker
}

// NewCommand creates a Command transformer.
func NewCommand(spec domain.TransformSpec, logger ports.Logger, walker *fs.Walker) (*Command, error) {
	if len(spec.Command) == 0 {
		return nil, zerr.With(domain.ErrInvalidTransformSpec, "transform", spec.Name)
	}
	return &Command{
		spec:     spec,
		identity: identityOf(spec),
		logger:   logger,
		walker:   walker,
	}, nil
}

// Identity returns the transformer identity.
func (c *Command) Identity() domain.TransformIdentity {
	return c.identity
}

// Transform runs the command with the workspace as working directory.
// It merges environments with the following priority (low to high):
// 1. os.Environ() (System base)
// 2. spec.Environment (User-defined overrides)
// 3. MORPH_INPUT and MORPH_OUTPUT
func (c *Command) Transform(ctx context.Context, input, workspace string) ([]string, error) {
	args := make([]string, len(c.spec.Command))
	for i, arg := range c.spec.Command {
		arg = strings.ReplaceAll(arg, InputPlaceholder, input)
		args[i] = strings.ReplaceAll(arg, OutputPlaceholder, workspace)
	}

	cmdEnv := resolveEnvironment(os.Environ(), c.spec.Environment)
	cmdEnv = append(cmdEnv, EnvInput+"="+input, EnvOutput+"="+workspace)

	name := args[0]
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args[1:]...) //nolint:gosec // user provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = workspace
	cmd.Env = cmdEnv

	stdout := newLineWriter(c.logger.Info)
	stderr := newLineWriter(func(line string) { c.logger.Warn(line) })
	cmd.Stdout = io.Writer(stdout)
	cmd.Stderr = io.Writer(stderr)
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stdout = io.MultiWriter(stdout, vertex.Stdout())
		cmd.Stderr = io.MultiWriter(stderr, vertex.Stderr())
	}

	runErr := cmd.Run()
	stdout.Flush()
	stderr.Flush()
	if runErr != nil {
		exitCode := -1
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return nil, zerr.With(zerr.Wrap(runErr, domain.ErrCommandFailed.Error()), "exit_code", exitCode)
	}

	return c.collectOutputs(workspace)
}

// collectOutputs expands the declared outputs below workspace, or lists every file
// in the workspace when none are declared.
func (c *Command) collectOutputs(workspace string) ([]string, error) {
	if len(c.spec.Outputs) == 0 {
		return slices.Collect(c.walker.WalkFiles(workspace, nil)), nil
	}

	var outputs []string
	for _, pattern := range c.spec.Outputs {
		matches, err := filepath.Glob(filepath.Join(workspace, pattern))
		if err != nil || len(matches) == 0 {
			return nil, zerr.With(domain.ErrOutputNotFound, "output", pattern)
		}
		slices.Sort(matches)
		outputs = append(outputs, matches...)
	}
	return slices.Compact(outputs), nil
}

// lineWriter forwards complete lines to emit, buffering partial writes.
type lineWriter struct {
	emit func(string)
	buf  []byte
}

func newLineWriter(emit func(string)) *lineWriter {
	return &lineWriter{emit: emit}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := slices.Index(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(strings.TrimSuffix(string(w.buf[:i]), "\r"))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *lineWriter) Flush() {
	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

// resolveEnvironment merges the system environment with the transform's environment overrides.
// The result is sorted for reproducible process environments.
func resolveEnvironment(sysEnv []string, specEnv map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(specEnv))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range specEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
