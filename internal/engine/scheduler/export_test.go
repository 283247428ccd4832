package scheduler

// SelectArtifacts exposes artifact selection for tests.
var SelectArtifacts = selectArtifacts
