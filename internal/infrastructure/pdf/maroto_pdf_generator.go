// Package pdf implementa el renderizado de documentos clínicos con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO (Receituário / Atestado / Solicitação)   │  Fecha   │
//	│  Profesional + CRM                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Paciente: nombre │ CPF │ nacimiento                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTENIDO (una fila por línea, ajuste por palabras)        │
//	│                                                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Assinatura Eletrônica:                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/receituario-api/internal/application/ports"
)

// SignaturePlaceholder texto fijo de la línea de firma.
const SignaturePlaceholder = "Assinatura Eletrônica:"

const (
	fontSize     = 12
	lineHeight   = 6
	wrapAt       = 85 // caracteres por línea a 12pt sobre 180mm
	contentSpace = 120
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.DocumentRenderer = (*MarotoRenderer)(nil)

// MarotoRenderer implementa ports.DocumentRenderer. Sin estado, seguro para uso concurrente.
type MarotoRenderer struct{}

// NewMarotoRenderer construye el generador.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoRenderer) Render(_ context.Context, in ports.RenderInput) ([]byte, error) {
	title := nonEmpty(in.Title, "Documento")
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: fontSize}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(in.ProfessionalName, "Receituário"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, in))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if r, ok := patientRow(in); ok {
		m.AddRows(r)
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	m.AddRows(row.New(4))
	body := contentRows(in.Content)
	m.AddRows(body...)

	// Empuja la firma hacia el pie cuando el contenido es corto.
	if used := len(body) * lineHeight; used < contentSpace {
		m.AddRows(row.New(float64(contentSpace - used)))
	}
	m.AddRows(signatureRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de emisión (der); profesional debajo.
func headerRow(title string, in ports.RenderInput) core.Row {
	right := col.New(4)
	if !in.IssuedAt.IsZero() {
		right.Add(text.New("Emitido em "+in.IssuedAt.Format("02/01/2006"), props.Text{
			Size: 9, Align: align.Right, Top: 3, Color: colorGray,
		}))
	}

	left := col.New(8).Add(
		text.New(clean(title), props.Text{
			Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1,
		}),
	)
	if in.ProfessionalName != "" {
		prof := clean(in.ProfessionalName)
		if in.ProfessionalCRM != "" {
			prof += "  |  " + in.ProfessionalCRM
		}
		left.Add(text.New(prof, props.Text{Size: 10, Top: 10, Color: colorGray}))
	}
	return row.New(18).Add(left, right)
}

// patientRow: datos del paciente; false si no hay ninguno.
func patientRow(in ports.RenderInput) (core.Row, bool) {
	var parts []string
	if in.PatientName != "" {
		parts = append(parts, "Paciente: "+clean(in.PatientName))
	}
	if in.PatientCPF != "" {
		parts = append(parts, "CPF: "+in.PatientCPF)
	}
	if in.PatientBirthDate != nil {
		parts = append(parts, "Nascimento: "+in.PatientBirthDate.Format("02/01/2006"))
	}
	if len(parts) == 0 {
		return nil, false
	}
	return row.New(9).Add(col.New(12).Add(
		text.New(strings.Join(parts, "   |   "), props.Text{Size: 10, Top: 2}),
	)), true
}

// contentRows: una fila por línea del contenido, respetando saltos de línea.
func contentRows(content string) []core.Row {
	var rows []core.Row
	for _, paragraph := range strings.Split(clean(content), "\n") {
		lines := wrap(paragraph, wrapAt)
		if len(lines) == 0 {
			rows = append(rows, row.New(lineHeight))
			continue
		}
		for _, l := range lines {
			rows = append(rows, row.New(lineHeight).Add(col.New(12).Add(
				text.New(l, props.Text{Size: fontSize, Top: 0.5}),
			)))
		}
	}
	return rows
}

func signatureRows() []core.Row {
	return []core.Row{
		line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(10).Add(col.New(12).Add(
			text.New(SignaturePlaceholder, props.Text{Size: 10, Top: 2, Color: colorGray}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// clean normaliza a NFC y descarta retornos de carro.
func clean(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// wrap parte s por palabras en líneas de como máximo n runas.
// Palabras más largas que n se cortan.
func wrap(s string, n int) []string {
	var lines []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if curLen > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
	}
	for _, word := range strings.Fields(s) {
		for utf8.RuneCountInString(word) > n {
			flush()
			r := []rune(word)
			lines = append(lines, string(r[:n]))
			word = string(r[n:])
		}
		wl := utf8.RuneCountInString(word)
		if curLen > 0 && curLen+1+wl > n {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(word)
		curLen += wl
	}
	flush()
	return lines
}
