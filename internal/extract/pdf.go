package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF rebuilds visual rows, top to bottom on each page, so verse headings
// printed on their own row come out as their own line.
func extractPDF(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		for _, row := range rows {
			lines = append(lines, joinRow(row.Content))
		}
		// page break reads as a paragraph break
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// wordGap is the horizontal gap, as a fraction of the font size, above which two
// text runs on a row are read as separate words.
const wordGap = 0.15

// joinRow concatenates the runs of a row, inserting a space where the layout
// leaves a gap instead of a space glyph.
func joinRow(texts pdf.TextHorizontal) string {
	var b strings.Builder
	for i, t := range texts {
		if i > 0 && needsSpace(texts[i-1], t) {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
	}
	return strings.TrimSpace(b.String())
}

func needsSpace(prev, cur pdf.Text) bool {
	if strings.HasSuffix(prev.S, " ") || strings.HasPrefix(cur.S, " ") {
		return false
	}
	size := cur.FontSize
	if size <= 0 {
		size = 1
	}
	return cur.X-(prev.X+prev.W) > wordGap*size
}
