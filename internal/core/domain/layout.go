package domain

import "path/filepath"

const (
	// MorphDirName is the name of the internal workspace directory.
	MorphDirName = ".morph"

	// StoreDirName is the name of the result record store directory.
	StoreDirName = "store"

	// WorkspacesDirName is the name of the directory holding transformer outputs.
	WorkspacesDirName = "workspaces"

	// PipelineFileName is the name of the pipeline configuration file.
	PipelineFileName = "morph.yaml"

	// SettingsFileName is the name of the optional runtime settings file.
	SettingsFileName = "settings.yaml"

	// EnvPrefix is the prefix of environment variables overriding settings.
	EnvPrefix = "MORPH_"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCacheDir returns the default root directory for morph metadata.
func DefaultCacheDir() string {
	return MorphDirName
}

// StorePath returns the result store directory below cacheDir.
func StorePath(cacheDir string) string {
	return filepath.Join(cacheDir, StoreDirName)
}

// WorkspacesPath returns the workspaces directory below cacheDir.
func WorkspacesPath(cacheDir string) string {
	return filepath.Join(cacheDir, WorkspacesDirName)
}

// DefaultSettingsPath returns the default path of the settings file.
// It joins .morph and settings.yaml.
func DefaultSettingsPath() string {
	return filepath.Join(MorphDirName, SettingsFileName)
}
