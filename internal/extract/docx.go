package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// docxText joins the document's paragraphs with newlines.
func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	paragraphs, err := paragraphs(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to parse document.xml: %w", err)
	}
	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}

// paragraphs walks WordprocessingML and returns the text of every w:p element.
// Runs are concatenated; w:tab and w:br inside a run become a tab and a newline.
// Paragraphs nested in text boxes are emitted on their own, before the
// paragraph that anchors them.
func paragraphs(documentXML string) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		out      []string
		open     []*strings.Builder
		runDepth int
		inText   bool
	)
	current := func() *strings.Builder {
		if len(open) == 0 {
			return nil
		}
		return open[len(open)-1]
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "r":
				runDepth++
			case "t":
				inText = true
			case "tab":
				if p := current(); p != nil && runDepth > 0 {
					p.WriteString("\t")
				}
			case "br", "cr":
				if p := current(); p != nil && runDepth > 0 {
					p.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if p := current(); p != nil {
					out = append(out, p.String())
					open = open[:len(open)-1]
				}
			case "r":
				if runDepth > 0 {
					runDepth--
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if p := current(); p != nil && inText {
				p.Write(t)
			}
		}
	}
	return out, nil
}
