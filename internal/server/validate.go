package server

import (
	"encoding/json"
	"fmt"

	"github.com/arnav/career-copilot/internal/schemas"
)

// validateArtifact marshals a generated artifact and checks it against a
// named embedded schema. Handlers call it before persisting anything the
// pipeline produced, so malformed output never reaches the database.
func validateArtifact(schemaName string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", schemaName, err)
	}
	return schemas.Validate(schemaName, string(raw))
}
