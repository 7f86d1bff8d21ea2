package infra

// pdf.go — printable orden de pedido using go-pdf/fpdf.
// A5 sheet with the order header (número, estado, bodega, proveedor), the
// line table (código, producto, cantidad, precio, subtotal), totals split by
// tax bracket, and the observaciones block.
//
// The output file is saved to storagePath/pedido_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/raydan90s/smileops-pedidos/internal/model"
	"github.com/raydan90s/smileops-pedidos/internal/service"
)

// GenerarOrdenPDF writes the orden de pedido sheet for a loaded pedido and
// returns the absolute path of the generated file. Amounts are rounded to two
// places here, at the render edge only.
func GenerarOrdenPDF(p *model.Pedido, t service.Totales, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("pedido_%d.pdf", p.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "SmileOps", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Orden de Pedido", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Pedido N° %d — %s", p.ID, model.NombreEstado(p.Estado)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	if p.NombreBodegaDestino != "" {
		pdf.CellFormat(contentW, 4, "Bodega destino: "+p.NombreBodegaDestino, "", 1, "L", false, 0, "")
	}
	if p.NombreProveedor != "" {
		pdf.CellFormat(contentW, 4, "Proveedor: "+p.NombreProveedor, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// ── Line table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.16 // código
	col2 := contentW * 0.38 // producto
	col3 := contentW * 0.14 // cantidad
	col4 := contentW * 0.15 // precio
	col5 := contentW * 0.17 // subtotal

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Código", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 5, "Precio", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, l := range p.Lineas {
		precio := decimal.Zero
		if l.PrecioUnitario != nil {
			precio = *l.PrecioUnitario
		}
		subtotal := l.CantidadSolicitada.Mul(precio)

		pdf.CellFormat(col1, 5, l.Codigo, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, l.Nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, l.CantidadSolicitada.String(), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 5, precio.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 5, subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := contentW * 0.7
	amountW := contentW * 0.3

	renglon := func(etiqueta string, monto decimal.Decimal, negrita bool) {
		estilo := ""
		if negrita {
			estilo = "B"
		}
		pdf.SetFont("Helvetica", estilo, 8)
		pdf.CellFormat(labelW, 5, etiqueta, "", 0, "R", false, 0, "")
		pdf.CellFormat(amountW, 5, monto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	renglon("Subtotal tarifa 0%:", t.SubtotalTarifaCero, false)
	renglon("Subtotal gravado:", t.SubtotalGravado, false)
	renglon("Subtotal:", t.Subtotal, false)
	renglon("IVA:", t.TotalIVA, false)
	renglon("TOTAL:", t.Total, true)

	// ── Observaciones ────────────────────────────────────────────────────────
	if p.Observaciones != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(contentW, 4, "Observaciones", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.MultiCell(contentW, 4, p.Observaciones, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
