package export

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/banchee-erp/banchee-erp/internal/cashbook"
)

// Renderer converts an HTML page set into PDF bytes. *report.Client is the
// production implementation; tests substitute a stub.
type Renderer interface {
	RenderHTML(ctx context.Context, html string, width, height float64) ([]byte, error)
}

// PDFExporter turns draw-instruction documents into PDFs by serializing
// each page to absolutely positioned HTML and handing it to the renderer.
type PDFExporter struct {
	renderer Renderer
}

func NewPDFExporter(r Renderer) *PDFExporter {
	return &PDFExporter{renderer: r}
}

// Export renders the document to PDF bytes.
func (e *PDFExporter) Export(ctx context.Context, doc cashbook.Document) ([]byte, error) {
	if e == nil || e.renderer == nil {
		return nil, fmt.Errorf("export: pdf renderer not configured")
	}
	pdf, err := e.renderer.RenderHTML(ctx, DocumentHTML(doc), doc.Width, doc.Height)
	if err != nil {
		return nil, fmt.Errorf("export: render pdf: %w", err)
	}
	return pdf, nil
}

// DocumentHTML serializes draw instructions into a print-ready HTML page
// per report page. Instruction coordinates are bottom-left origin; CSS
// positions are top-left, so Y flips against the page height.
func DocumentHTML(doc cashbook.Document) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
	fmt.Fprintf(&b, "<style>@page{size:%.2fpt %.2fpt;margin:0;}", doc.Width, doc.Height)
	b.WriteString("body{margin:0;font-family:'TH Sarabun New','Sarabun',sans-serif;}")
	fmt.Fprintf(&b, ".pg{position:relative;width:%.2fpt;height:%.2fpt;overflow:hidden;page-break-after:always;}", doc.Width, doc.Height)
	b.WriteString(".tx{position:absolute;white-space:nowrap;line-height:1;}")
	b.WriteString(".ln,.rc{position:absolute;}")
	b.WriteString("</style></head><body>")

	for _, page := range doc.Pages {
		b.WriteString("<div class=\"pg\">")
		for _, op := range page.Ops {
			writeOp(&b, doc.Height, op)
		}
		b.WriteString("</div>")
	}
	b.WriteString("</body></html>")
	return b.String()
}

func writeOp(b *strings.Builder, pageH float64, op cashbook.Op) {
	switch op.Kind {
	case cashbook.OpText:
		top := pageH - op.Y - op.Size
		style := fmt.Sprintf("left:%.2fpt;top:%.2fpt;font-size:%.2fpt;", op.X, top, op.Size)
		if op.Bold {
			style += "font-weight:bold;"
		}
		switch op.Align {
		case cashbook.AlignCenter:
			style += "transform:translateX(-50%);"
		case cashbook.AlignRight:
			style += "transform:translateX(-100%);"
		}
		fmt.Fprintf(b, "<div class=\"tx\" style=\"%s\">%s</div>", style, html.EscapeString(op.Text))
	case cashbook.OpLine:
		x1, y1, x2, y2 := op.X, op.Y, op.X2, op.Y2
		if x1 == x2 {
			top := pageH - maxf(y1, y2)
			fmt.Fprintf(b, "<div class=\"ln\" style=\"left:%.2fpt;top:%.2fpt;width:%.2fpt;height:%.2fpt;background:#000;\"></div>",
				x1-op.Thickness/2, top, op.Thickness, absf(y2-y1))
		} else {
			top := pageH - y1
			fmt.Fprintf(b, "<div class=\"ln\" style=\"left:%.2fpt;top:%.2fpt;width:%.2fpt;height:%.2fpt;background:#000;\"></div>",
				minf(x1, x2), top-op.Thickness/2, absf(x2-x1), op.Thickness)
		}
	case cashbook.OpRect:
		top := pageH - op.Y - op.H
		fmt.Fprintf(b, "<div class=\"rc\" style=\"left:%.2fpt;top:%.2fpt;width:%.2fpt;height:%.2fpt;border:%.2fpt solid #000;box-sizing:border-box;\"></div>",
			op.X, top, op.W, op.H, op.Thickness)
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
