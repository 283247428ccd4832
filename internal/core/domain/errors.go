package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptyChain is returned when a transformation chain is constructed without any steps.
	ErrEmptyChain = zerr.New("transformation chain must contain at least one step")

	// ErrNilTransformation is returned when a chain is constructed with a nil element.
	ErrNilTransformation = zerr.New("transformation must not be nil")

	// ErrNilTransformer is returned when a step is constructed without a transformer.
	ErrNilTransformer = zerr.New("step requires a transformer")

	// ErrNilExecutor is returned when a step is constructed without an executor.
	ErrNilExecutor = zerr.New("step requires an executor")

	// ErrTransformExecutionFailed is returned when a transformer fails for an input file.
	ErrTransformExecutionFailed = zerr.New("transform execution failed")

	// ErrDependencyFailed is recorded on an artifact whose chain requires dependencies
	// when one of those dependencies did not resolve.
	ErrDependencyFailed = zerr.New("dependency failed to resolve")

	// ErrResolutionFailed is returned by the run command when at least one artifact failed.
	ErrResolutionFailed = zerr.New("artifact resolution failed")

	// ErrArtifactAlreadyExists is returned when attempting to add an artifact whose name already exists.
	ErrArtifactAlreadyExists = zerr.New("artifact already exists")

	// ErrArtifactNotFound is returned when a requested artifact is not part of the pipeline.
	ErrArtifactNotFound = zerr.New("artifact not found")

	// ErrMissingDependency is returned when an artifact references a dependency that doesn't exist.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the artifact dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrReservedArtifactName is returned when an artifact uses a reserved name (e.g., "all").
	ErrReservedArtifactName = zerr.New("artifact name 'all' is reserved")

	// ErrChainNotFound is returned when an artifact references an undefined chain.
	ErrChainNotFound = zerr.New("chain not found")

	// ErrTransformNotFound is returned when a chain references an undefined transform.
	ErrTransformNotFound = zerr.New("transform not found")

	// ErrUnknownTransformKind is returned when a transform declares a kind with no registered implementation.
	ErrUnknownTransformKind = zerr.New("unknown transform kind")

	// ErrInvalidTransformSpec is returned when a transform definition is missing required fields.
	ErrInvalidTransformSpec = zerr.New("invalid transform definition")

	// ErrUnknownProperty is returned when a convention is mapped to a property that was never declared.
	ErrUnknownProperty = zerr.New("cannot map a property that does not exist")

	// ErrConventionTypeMismatch is returned when a resolved convention value has an unexpected type.
	ErrConventionTypeMismatch = zerr.New("convention value has unexpected type")

	// ErrConventionResolveFailed is returned when a convention provider fails.
	ErrConventionResolveFailed = zerr.New("failed to resolve convention")

	// ErrMemoCreateFailed is returned when the result memo cannot be created.
	ErrMemoCreateFailed = zerr.New("failed to create result memo")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrSettingsLoadFailed is returned when runtime settings cannot be loaded.
	ErrSettingsLoadFailed = zerr.New("failed to load settings")

	// ErrInputNotFound is returned when a declared input file or glob matches nothing.
	ErrInputNotFound = zerr.New("input not found")

	// ErrInputResolutionFailed is returned when artifact file patterns cannot be resolved.
	ErrInputResolutionFailed = zerr.New("failed to resolve inputs")

	// ErrStoreCreateFailed is returned when the result store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create result store directory")

	// ErrStoreReadFailed is returned when a result record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read result record")

	// ErrStoreUnmarshalFailed is returned when a result record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal result record")

	// ErrStoreMarshalFailed is returned when a result record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal result record")

	// ErrStoreWriteFailed is returned when a result record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write result record")

	// ErrWorkspacePrepareFailed is returned when a transformer workspace cannot be created or cleaned.
	ErrWorkspacePrepareFailed = zerr.New("failed to prepare transform workspace")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrCommandFailed is returned when a command transformer exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrOutputNotFound is returned when a declared transformer output was not produced.
	ErrOutputNotFound = zerr.New("declared output not produced")

	// ErrArchiveExtractFailed is returned when an archive cannot be extracted.
	ErrArchiveExtractFailed = zerr.New("failed to extract archive")

	// ErrArchiveEntryOutsideWorkspace is returned when an archive entry would escape the workspace.
	ErrArchiveEntryOutsideWorkspace = zerr.New("archive entry is outside the workspace")

	// ErrCopyFailed is returned when the copy transformer cannot copy its input.
	ErrCopyFailed = zerr.New("failed to copy input")

	// ErrMetricsServerFailed is returned when the metrics endpoint cannot be served.
	ErrMetricsServerFailed = zerr.New("metrics server failed")
)
