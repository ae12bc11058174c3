package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// wordNS is the WordprocessingML main namespace.
const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// extractDOCX returns one line per <w:p> paragraph. Runs are joined as written
// since Word splits words across runs; <w:br/> starts a new line and <w:tab/>
// becomes a space, so a heading typed with a soft break still sits alone.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: not a zip: %w", err)
	}
	f, err := zr.Open(docxBody)
	if err != nil {
		return "", fmt.Errorf("extract DOCX: %w", err)
	}
	defer f.Close()

	var (
		lines []string
		cur   strings.Builder
		inP   bool
		inT   bool
	)
	flush := func() {
		lines = append(lines, strings.TrimSpace(cur.String()))
		cur.Reset()
	}
	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("extract DOCX: decode %s: %w", docxBody, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				inP = true
			case "t":
				inT = true
			case "br", "cr":
				if inP {
					flush()
				}
			case "tab":
				cur.WriteByte(' ')
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				flush()
				inP = false
			case "t":
				inT = false
			}
		case xml.CharData:
			if inT {
				cur.Write(t)
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
