package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderjulianmartinez/upload-watch/pkg/types"
)

// WriteJSON encodes result with two-space indentation.
func WriteJSON(w io.Writer, result types.CheckResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
