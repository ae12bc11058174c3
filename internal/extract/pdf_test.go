package extract

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestJoinRow(t *testing.T) {
	glyphs := func(s string, x, w float64) pdf.Text {
		return pdf.Text{S: s, X: x, W: w, FontSize: 10}
	}
	tests := []struct {
		name string
		row  pdf.TextHorizontal
		want string
	}{
		{
			"positioned words without space glyphs",
			pdf.TextHorizontal{glyphs("Marcos", 0, 30), glyphs("7:14-23", 34, 30)},
			"Marcos 7:14-23",
		},
		{
			"adjacent glyphs stay joined",
			pdf.TextHorizontal{glyphs("M", 0, 6), glyphs("a", 6, 5), glyphs("r", 11.5, 4)},
			"Mar",
		},
		{
			"existing space not doubled",
			pdf.TextHorizontal{glyphs("Juan ", 0, 25), glyphs("3:16", 40, 20)},
			"Juan 3:16",
		},
		{"empty row", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinRow(tt.row); got != tt.want {
				t.Errorf("joinRow = %q, want %q", got, tt.want)
			}
		})
	}
}
