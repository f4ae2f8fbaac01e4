// Package printout renders a paginated report as a printable HTML document
// or an A4 PDF.
package printout

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/alexiusacademia/gorcdraft/internal/report"
	"github.com/alexiusacademia/gorcdraft/internal/svgdraw"
)

var markdown = goldmark.New()

// Inline renders a row's inline markdown (bold, italic, code) to HTML.
// Raw HTML in the source is escaped.
func Inline(text string) template.HTML {
	if text == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return template.HTML(out)
}

type pageView struct {
	report.Page
	Hidden bool
}

type bandView struct {
	Value    string
	Label    string
	Selected bool
}

type documentView struct {
	TaskID    string
	Generated string
	Total     int
	Pages     []pageView
	Bands     []bandView
}

// WriteHTML writes the report as one HTML document. Pages outside sel stay
// in the document but are hidden, and a band selector is included once the
// report has more than one page.
func WriteHTML(w io.Writer, rep *report.Report, sel report.Selection) error {
	doc := documentView{
		TaskID:    rep.TaskID,
		Generated: rep.Generated.Format("2006-01-02 15:04"),
		Total:     len(rep.Pages),
	}
	for _, p := range rep.Pages {
		doc.Pages = append(doc.Pages, pageView{Page: p, Hidden: !sel.Visible(p.Number)})
	}
	if len(rep.Pages) > 1 {
		doc.Bands = append(doc.Bands, bandView{Value: "all", Label: fmt.Sprintf("All Pages (%d)", len(rep.Pages)), Selected: sel.All})
		for _, b := range report.Bands(len(rep.Pages)) {
			doc.Bands = append(doc.Bands, bandView{Value: b.String(), Label: b.Label(), Selected: !sel.All && sel.Band == b})
		}
	}
	return pageTemplate.Execute(w, doc)
}

func renderBlock(b report.Block) template.HTML {
	var buf bytes.Buffer
	var err error
	switch b := b.(type) {
	case report.SectionHeader:
		err = blockTemplates.ExecuteTemplate(&buf, "header", b)
	case report.Row:
		err = blockTemplates.ExecuteTemplate(&buf, "row", b)
	case report.SubHeader:
		err = blockTemplates.ExecuteTemplate(&buf, "sub", b)
	case report.Table:
		err = blockTemplates.ExecuteTemplate(&buf, "table", b)
	case report.Visual:
		err = blockTemplates.ExecuteTemplate(&buf, "visual", b)
	}
	if err != nil {
		return template.HTML(template.HTMLEscapeString(err.Error()))
	}
	return template.HTML(buf.String())
}

func drawingHTML(d svgdraw.Drawing) template.HTML {
	if d.MaxHeight > 0 {
		return template.HTML(fmt.Sprintf(`<div class="img-container" style="max-height:%dpx">%s</div>`, d.MaxHeight, d.Markup))
	}
	return template.HTML(`<div class="img-container">` + d.Markup + `</div>`)
}

var blockFuncs = template.FuncMap{
	"inline":  Inline,
	"drawing": drawingHTML,
	"cols":    func(t report.Table) int { return max(1, len(t.Cells)) },
}

var blockTemplates = template.Must(template.New("blocks").Funcs(blockFuncs).Parse(`
{{define "header"}}<div class="section-header">{{.Title}}</div>{{end}}
{{define "row"}}<div class="row"><div class="cell ref">{{.Ref}}</div><div class="cell calc">{{inline .Calc}}</div><div class="cell out">{{.Out}}</div></div>{{end}}
{{define "sub"}}<div class="sub-header">{{.Text}}</div>{{end}}
{{define "table"}}<div class="row table-row"><div class="cell ref">TABLE</div><div class="cell calc"><div class="grid{{if .Header}} header{{end}}" style="grid-template-columns:repeat({{cols .}},1fr)">{{range .Cells}}<div>{{.}}</div>{{end}}</div></div></div>{{end}}
{{define "visual"}}<div class="visual-row"><div class="visual-label">{{.Caption}}</div>{{drawing .Drawing}}<div class="scale-note">[ SCALE: NOT TO SCALE ]</div></div>{{end}}
`))

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{"renderBlock": renderBlock}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Calculation Sheets - {{.TaskID}}</title>
<style>
body { font-family: Inter, sans-serif; background: #eee; margin: 0; }
.page { width: 210mm; min-height: 297mm; margin: 10mm auto; background: #fff; padding: 15mm; box-sizing: border-box; }
.hidden-page { display: none; }
.sheet-head { display: flex; justify-content: space-between; border-bottom: 2px solid #222; font-size: 11px; margin-bottom: 8px; }
.section-header { background: #222; color: #fff; font-weight: bold; padding: 6px 8px; margin-top: 8px; }
.sub-header { font-weight: bold; padding: 8px 0 2px 20px; }
.row { display: grid; grid-template-columns: 25mm 1fr 30mm; border-bottom: 1px solid #ddd; font-size: 12px; }
.cell { padding: 4px 6px; }
.cell.ref { border-right: 1px solid #ddd; color: #555; }
.cell.out { border-left: 1px solid #ddd; font-weight: bold; }
.grid { display: grid; border: 1px solid #ddd; font-size: 11px; }
.grid > div { padding: 3px; border: 1px solid #eee; }
.grid.header > div { font-weight: bold; background: #f5f5f5; }
.visual-row { text-align: center; padding: 8px 0; border-bottom: 1px solid #ddd; }
.visual-label { font-size: 11px; color: #666; font-weight: bold; text-transform: uppercase; }
.img-container svg { max-width: 100%; height: auto; }
.scale-note { font-size: 10px; color: #999; }
@media print { body { background: #fff; } .page { margin: 0; page-break-after: always; } .no-print { display: none; } }
</style>
</head>
<body>
{{if .Bands}}<form class="no-print" method="get"><select name="band" onchange="this.form.submit()">{{range .Bands}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select></form>{{end}}
{{range .Pages}}<div class="page{{if .Hidden}} hidden-page{{end}}" id="page-{{.Number}}">
<div class="sheet-head"><span>Task: {{$.TaskID}}</span><span>Date: {{$.Generated}}</span><span>Sheet <span class="sheet-num">{{.Number}}</span> of {{$.Total}}</span></div>
<div class="calc-body">{{range .Blocks}}{{renderBlock .}}{{end}}</div>
</div>
{{end}}</body>
</html>
`))
