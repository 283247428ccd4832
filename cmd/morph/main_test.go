package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/morph/internal/app"
)

const pipelineConfig = `version: "1"
transforms:
  unzip:
    kind: unzip
  listing:
    cmd: ["sh", "-c", "ls {input} > listing.txt"]
    outputs: ["listing.txt"]
chains:
  extract: [unzip]
  inspect: [unzip, listing]
artifacts:
  lib:
    files: ["lib.zip"]
    chain: extract
  report:
    files: ["lib.zip"]
    chain: inspect
    dependsOn: [lib]
`

func writeArchive(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	entry, err := w.Create("A.class")
	require.NoError(t, err)
	_, err = entry.Write([]byte("class"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		config       string
		args         []string
		expectedExit int
		contains     []string
	}{
		{
			name:         "Success with valid config",
			config:       pipelineConfig,
			args:         []string{"morph", "run"},
			expectedExit: 0,
			contains:     []string{"lib (resolved)", "report (resolved)", "listing.txt"},
		},
		{
			name:         "Plan does not run transformers",
			config:       pipelineConfig,
			args:         []string{"morph", "plan", "report"},
			expectedExit: 0,
			contains:     []string{"report [needs work]", "1. unzip@", "2. listing@"},
		},
		{
			name:         "Unknown artifact",
			config:       pipelineConfig,
			args:         []string{"morph", "run", "missing"},
			expectedExit: 1,
		},
		{
			name:         "Error with missing config",
			args:         []string{"morph", "-c", "nonexistent.yaml", "run"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			if tt.config != "" {
				require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "morph.yaml"), []byte(tt.config), 0o600))
				writeArchive(t, filepath.Join(tmpDir, "lib.zip"))
			}
			t.Chdir(tmpDir)

			os.Args = tt.args

			var out bytes.Buffer
			exitCode := run(app.WithOutput(&out))
			assert.Equal(t, tt.expectedExit, exitCode)
			for _, want := range tt.contains {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}
