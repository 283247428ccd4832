package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/morph/cmd/morph/commands"
	"go.trai.ch/morph/internal/app"
	"go.trai.ch/morph/internal/build"
)

type call struct {
	method  string
	targets []string
	opts    app.RunOptions
}

type fakeRunner struct {
	calls []call
	err   error
}

func (f *fakeRunner) Run(_ context.Context, targets []string, opts app.RunOptions) error {
	f.calls = append(f.calls, call{method: "run", targets: targets, opts: opts})
	return f.err
}

func (f *fakeRunner) Plan(_ context.Context, targets []string, opts app.RunOptions) error {
	f.calls = append(f.calls, call{method: "plan", targets: targets, opts: opts})
	return f.err
}

func TestRun_Flags(t *testing.T) {
	runner := &fakeRunner{}
	cli := commands.New(runner)
	cli.SetArgs([]string{
		"--config", "pipeline.yaml", "--json-logs",
		"run", "lib", "app", "-j", "4", "--metrics-addr", ":9090",
	})

	require.NoError(t, cli.Execute(context.Background()))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, call{
		method:  "run",
		targets: []string{"lib", "app"},
		opts: app.RunOptions{
			ConfigPath:  "pipeline.yaml",
			Parallelism: 4,
			JSONLogs:    true,
			MetricsAddr: ":9090",
		},
	}, runner.calls[0])
}

func TestRun_NoTargets(t *testing.T) {
	runner := &fakeRunner{}
	cli := commands.New(runner)
	cli.SetArgs([]string{"run"})

	require.NoError(t, cli.Execute(context.Background()))
	require.Len(t, runner.calls, 1)
	assert.Empty(t, runner.calls[0].targets)
	assert.Equal(t, app.RunOptions{}, runner.calls[0].opts)
}

func TestRun_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	cli := commands.New(&fakeRunner{err: boom})
	cli.SetArgs([]string{"run", "lib"})

	assert.ErrorIs(t, cli.Execute(context.Background()), boom)
}

func TestPlan(t *testing.T) {
	runner := &fakeRunner{}
	cli := commands.New(runner)
	cli.SetArgs([]string{"plan", "-c", "other.yaml", "lib"})

	require.NoError(t, cli.Execute(context.Background()))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "plan", runner.calls[0].method)
	assert.Equal(t, []string{"lib"}, runner.calls[0].targets)
	assert.Equal(t, "other.yaml", runner.calls[0].opts.ConfigPath)
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	cli := commands.New(&fakeRunner{})
	cli.SetOutput(&out)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "morph version "+build.Version+"\n", out.String())
}
