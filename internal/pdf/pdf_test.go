package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PassesThroughJSON(t *testing.T) {
	doc := []byte(`{"event":"Tech Meetup","starts":"6 PM"}`)

	txt, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, string(doc), txt)
}

func TestDecode_PlainTextUnchanged(t *testing.T) {
	doc := []byte("Event starts at 6 PM.\n\n\tDoors open at 5:30.")

	txt, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, string(doc), txt)
}

// buildPDF собирает одностраничный PDF с Helvetica, по строке текста на каждый аргумент
func buildPDF(lines ...string) []byte {
	var content strings.Builder
	content.WriteString("BT /F1 12 Tf 72 720 Td\n")
	for i, l := range lines {
		if i > 0 {
			content.WriteString("0 -16 Td\n")
		}
		fmt.Fprintf(&content, "(%s) Tj\n", l)
	}
	content.WriteString("ET")

	widths := make([]string, 0, 95)
	for c := ' '; c <= '~'; c++ {
		if c == ' ' {
			widths = append(widths, "278")
			continue
		}
		widths = append(widths, "556")
	}

	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [" + strings.Join(widths, " ") + "] >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestDecode_PDFKeepsWordBoundaries(t *testing.T) {
	txt, err := Decode(buildPDF("Event starts at 6 PM."))
	require.NoError(t, err)
	assert.Equal(t, "Event starts at 6 PM.", txt)
}

func TestDecode_PDFKeepsLines(t *testing.T) {
	txt, err := Decode(buildPDF("Event starts at 6 PM.", "Doors open at 5:30."))
	require.NoError(t, err)
	assert.Equal(t, "Event starts at 6 PM.\nDoors open at 5:30.", txt)
}

func TestDecode_BrokenPDF(t *testing.T) {
	_, err := Decode([]byte("%PDF-1.4\nthis is not really a pdf"))
	assert.Error(t, err)
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7 ...")))
	assert.False(t, IsPDF([]byte("PDF-1.7")))
	assert.False(t, IsPDF(nil))
}

func TestSanitize(t *testing.T) {
	in := "  Event\x00 starts \t at 6 PM \r\n\r\n Venue:   Hall  B\r"
	assert.Equal(t, "Event starts at 6 PM\nVenue: Hall B", Sanitize(in))
}
