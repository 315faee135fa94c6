package model

import (
	"encoding/json"
	"fmt"
	"io"
)

const currentVersion = 1

type artifactState struct {
	Version int `json:"version"`
	*Artifact
}

// Save serializes the artifact to a writer.
func (a *Artifact) Save(w io.Writer) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid artifact: %w", err)
	}
	return json.NewEncoder(w).Encode(artifactState{
		Version:  currentVersion,
		Artifact: a,
	})
}

// Load deserializes an artifact from a reader, replacing the receiver.
func (a *Artifact) Load(r io.Reader) error {
	var decoded Artifact
	state := artifactState{Artifact: &decoded}
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return fmt.Errorf("decode artifact: %w", err)
	}

	if state.Version < 1 || state.Version > currentVersion {
		return fmt.Errorf("unsupported artifact version %d (supported: %d)", state.Version, currentVersion)
	}

	if err := decoded.Validate(); err != nil {
		return fmt.Errorf("invalid artifact: %w", err)
	}

	*a = decoded
	return nil
}
