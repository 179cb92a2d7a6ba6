package export

import (
	"encoding/json"
	"fmt"

	"github.com/starford/raido/internal/models"
)

// EncodeJSON renders the verbatim export aggregate as indented JSON.
func EncodeJSON(agg models.ProjectExport) ([]byte, error) {
	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode: %w", err)
	}
	return data, nil
}

// DecodeJSON parses an export aggregate. The project must carry an id
// and a name; everything else may be empty.
func DecodeJSON(data []byte) (*models.ProjectExport, error) {
	var agg models.ProjectExport
	if err := json.Unmarshal(data, &agg); err != nil {
		return nil, fmt.Errorf("export: decode: %w", err)
	}
	if agg.Project.ID == "" || agg.Project.Name == "" {
		return nil, fmt.Errorf("export: snapshot missing project id or name")
	}
	return &agg, nil
}
