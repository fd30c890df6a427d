package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spacesedan/sentiscope/internal/models"
)

// WriteJSON writes the full result with two-space indentation. Non-ASCII
// text and HTML characters are written as-is.
func WriteJSON(w io.Writer, result models.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}

func ExportJSON(path string, result models.AnalysisResult) (string, error) {
	err := writeFile(path, func(f *os.File) error {
		return WriteJSON(f, result)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Exported complete analysis to %s", path), nil
}
