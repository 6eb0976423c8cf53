package pdf

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	rscpdf "rsc.io/pdf"
)

var magic = []byte("%PDF-")

func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, magic)
}

// Decode — текст документа для промпта: PDF разбираем, остальное (JSON/txt) отдаём как есть
func Decode(data []byte) (string, error) {
	if !IsPDF(data) {
		return string(data), nil
	}
	txt, err := ExtractText(data)
	if err != nil {
		return "", err
	}
	return Sanitize(txt), nil
}

// wordGap — разрыв между глифами (в долях кегля), после которого ставится пробел
const wordGap = 0.2

// ExtractText извлекает текст постранично. rsc.io/pdf паникует на битых файлах,
// поэтому паника превращается в ошибку.
func ExtractText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := rscpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		writeGlyphs(&sb, p.Content().Text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// writeGlyphs склеивает глифы страницы. Пробелы rsc.io/pdf не отдаёт,
// поэтому границы слов и строк восстанавливаются по координатам.
func writeGlyphs(sb *strings.Builder, glyphs []rscpdf.Text) {
	var prev rscpdf.Text
	for i, t := range glyphs {
		if i > 0 {
			switch {
			case math.Abs(t.Y-prev.Y) > prev.FontSize/2:
				sb.WriteString("\n")
			case t.X-(prev.X+prev.W) > wordGap*prev.FontSize:
				sb.WriteString(" ")
			}
		}
		sb.WriteString(strings.ReplaceAll(t.S, "\x00", ""))
		prev = t
	}
}

// Sanitize схлопывает пробелы внутри строк и убирает пустые строки
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\x00", "")

	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
