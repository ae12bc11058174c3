package extract

import (
	"fmt"

	"github.com/lu4p/cat"
)

// extractCat handles OpenDocument text and RTF through lu4p/cat, which detects
// the format from the content itself.
func extractCat(content []byte) (string, error) {
	text, err := cat.FromBytes(content)
	if err != nil {
		return "", fmt.Errorf("extract document: %w", err)
	}
	return text, nil
}
