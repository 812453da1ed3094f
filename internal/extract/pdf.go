package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

func openPDF(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("failed to read pdf: %v", rec)
		}
	}()

	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	return r, nil
}

// wordGap is the horizontal gap, as a fraction of the font size, above which
// two neighbouring glyphs on a line belong to different words.
const wordGap = 0.15

// pdfRowsText rebuilds each page line by line from glyph positions, top to
// bottom, inserting a space wherever glyphs are visibly apart.
func pdfRowsText(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf rows: %v", rec)
		}
	}()

	r, err := openPDF(data)
	if err != nil {
		return "", err
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return "", errors.New("pdf has no pages")
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, strings.Join(layoutLines(page.Content().Text), "\n"))
	}

	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

type glyphRow struct {
	y      float64
	glyphs []pdf.Text
}

// layoutLines groups glyphs into rows by baseline and joins each row left to
// right. Glyphs drawn without width information are spaced by their start
// positions alone.
func layoutLines(glyphs []pdf.Text) []string {
	var rows []*glyphRow
	byY := make(map[float64]*glyphRow)
	for _, g := range glyphs {
		// TJ arrays end with a synthetic newline glyph.
		if g.S == "" || g.S == "\n" {
			continue
		}
		y := math.Round(g.Y)
		row, ok := byY[y]
		if !ok {
			row = &glyphRow{y: y}
			byY[y] = row
			rows = append(rows, row)
		}
		row.glyphs = append(row.glyphs, g)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row.glyphs, func(i, j int) bool { return row.glyphs[i].X < row.glyphs[j].X })

		var line strings.Builder
		for i, g := range row.glyphs {
			if i > 0 && needsSpace(row.glyphs[i-1], g) {
				line.WriteByte(' ')
			}
			line.WriteString(g.S)
		}
		lines = append(lines, line.String())
	}
	return lines
}

func needsSpace(prev, next pdf.Text) bool {
	if endsWithSpace(prev.S) || startsWithSpace(next.S) {
		return false
	}
	size := math.Abs(prev.FontSize)
	if size == 0 {
		size = 1
	}
	return next.X-(prev.X+prev.W) > wordGap*size
}

func endsWithSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(r)
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}

// pdfPlainText reads the whole document's content streams in order.
func pdfPlainText(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf plain text: %v", rec)
		}
	}()

	r, err := openPDF(data)
	if err != nil {
		return "", err
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
