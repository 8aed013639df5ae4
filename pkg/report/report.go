// Package report serialises a ProjectReport to JSON, preserving field
// and slice ordering exactly as produced by the engine.
package report

import (
	"encoding/json"

	"github.com/devtriage/pyscope/pkg/models"
)

// Marshal renders a ProjectReport as indented JSON. Field names and
// ordering follow the struct tags and field order on models.ProjectReport
// directly; Go's encoding/json already preserves both, so no custom
// ordering logic is needed here.
func Marshal(r *models.ProjectReport) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// MarshalCompact renders a ProjectReport as single-line JSON, suitable
// for piping or storing as a history snapshot blob.
func MarshalCompact(r *models.ProjectReport) ([]byte, error) {
	return json.Marshal(r)
}

// Unmarshal parses a ProjectReport previously produced by Marshal or
// MarshalCompact, used by pkg/history to reload a stored snapshot.
func Unmarshal(data []byte) (*models.ProjectReport, error) {
	var r models.ProjectReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
