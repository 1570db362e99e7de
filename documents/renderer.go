package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mmdatafocus/portal_backend/models"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Document is the renderer's input, independent of the record type.
type Document struct {
	Title       string
	Fields      []models.DocumentField
	GeneratedAt time.Time
}

func DocumentFor(rec models.OwnedRecord, at time.Time) Document {
	return Document{Title: rec.DocumentTitle(), Fields: rec.DocumentFields(), GeneratedAt: at}
}

type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

const (
	pageLeft       = 50
	pageTop        = 60
	lineHeight     = 18
	linesPerPage   = 38
	wrapWidth      = 80
	labelWidthCols = 22
)

// PDFRenderer lays documents out as a simple label/value listing on A4
// pages using pdfcpu's JSON page description.
type PDFRenderer struct {
	conf *model.Configuration
}

func NewPDFRenderer() *PDFRenderer {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFRenderer{conf: conf}
}

type pdfFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type pdfText struct {
	Value string  `json:"value"`
	Pos   [2]int  `json:"pos"`
	Font  pdfFont `json:"font"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfDescription struct {
	Paper  string             `json:"paper"`
	Origin string             `json:"origin"`
	Pages  map[string]pdfPage `json:"pages"`
}

func (r *PDFRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	desc, err := json.Marshal(layout(doc))
	if err != nil {
		return nil, fmt.Errorf("encode page description: %w", err)
	}
	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(desc), &out, r.conf); err != nil {
		return nil, fmt.Errorf("pdfcpu create: %w", err)
	}
	return out.Bytes(), nil
}

// layout turns doc into positioned text lines, breaking onto new pages as
// needed.
func layout(doc Document) pdfDescription {
	body := pdfFont{Name: "Helvetica", Size: 11}
	heading := pdfFont{Name: "Helvetica-Bold", Size: 18}
	small := pdfFont{Name: "Helvetica", Size: 8}

	var lines []pdfText
	for _, f := range doc.Fields {
		for i, chunk := range wrap(f.Value, wrapWidth-labelWidthCols) {
			label := ""
			if i == 0 {
				label = f.Label
			}
			lines = append(lines, pdfText{Value: padLabel(label) + chunk, Font: body})
		}
	}

	pages := map[string]pdfPage{}
	pageNo := 1
	cur := []pdfText{
		{Value: doc.Title, Pos: [2]int{pageLeft, pageTop}, Font: heading},
		{Value: "Generated " + doc.GeneratedAt.UTC().Format(time.RFC1123), Pos: [2]int{pageLeft, pageTop + 24}, Font: small},
	}
	row := 3
	for _, l := range lines {
		if row >= linesPerPage {
			pages[fmt.Sprint(pageNo)] = pdfPage{Content: pdfContent{Text: cur}}
			pageNo++
			cur = nil
			row = 0
		}
		l.Pos = [2]int{pageLeft, pageTop + row*lineHeight}
		cur = append(cur, l)
		row++
	}
	pages[fmt.Sprint(pageNo)] = pdfPage{Content: pdfContent{Text: cur}}

	return pdfDescription{Paper: "A4P", Origin: "UpperLeft", Pages: pages}
}

func padLabel(label string) string {
	if label == "" {
		return strings.Repeat(" ", labelWidthCols)
	}
	label += ":"
	if len(label) >= labelWidthCols {
		return label + " "
	}
	return label + strings.Repeat(" ", labelWidthCols-len(label))
}

// wrap splits s on word boundaries into chunks of at most width runes.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var out []string
	line := ""
	for _, w := range words {
		for len([]rune(w)) > width {
			if line != "" {
				out = append(out, line)
				line = ""
			}
			r := []rune(w)
			out = append(out, string(r[:width]))
			w = string(r[width:])
		}
		switch {
		case line == "":
			line = w
		case len([]rune(line))+1+len([]rune(w)) <= width:
			line += " " + w
		default:
			out = append(out, line)
			line = w
		}
	}
	if line != "" {
		out = append(out, line)
	}
	return out
}
