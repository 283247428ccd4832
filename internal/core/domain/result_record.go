package domain

import "time"

// ResultRecord is the persisted outcome of applying one transformer to one input.
// It is keyed by the transformer identity and the content hash of the input.
type ResultRecord struct {
	Transformer string    `json:"transformer,omitzero"`
	InputFile   string    `json:"input_file,omitzero"`
	InputHash   string    `json:"input_hash,omitzero"`
	Outputs     []string  `json:"outputs,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}

// RecordKey returns the store key for a transformer identity and an input content hash.
func RecordKey(id TransformIdentity, inputHash string) string {
	return id.String() + "|" + inputHash
}
