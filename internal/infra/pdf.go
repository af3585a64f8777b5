package infra

// pdf.go — PDF generation using go-pdf/fpdf.
//
// Two documents are produced here:
//   - GenerateReciboPDF: an A7-size thermal receipt for a single sale
//     (header, customer block, item table, bold total). Written to disk so
//     the email worker can attach it.
//   - WriteReporteVentasPDF: the A4 sales report (summary block followed by
//     one section per sale), streamed straight into the HTTP response.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pastelpos/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateReciboPDF renders the receipt for a committed Venta.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateReciboPDF(venta *model.Venta, negocio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s.pdf", venta.ID)
	filePath := filepath.Join(storagePath, fileName)

	if err := buildReciboPDF(venta, negocio).OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// WriteReciboPDF streams the receipt for a committed Venta into w.
func WriteReciboPDF(w io.Writer, venta *model.Venta, negocio string) error {
	return buildReciboPDF(venta, negocio).Output(w)
}

func buildReciboPDF(venta *model.Venta, negocio string) *fpdf.Fpdf {
	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, negocio, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Recibo de Compra", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Sale info ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Cliente: "+venta.ClienteNombre, "", 1, "L", false, 0, "")
	if venta.ClienteCI != nil && *venta.ClienteCI != "" {
		pdf.CellFormat(contentW, 4, "CI/NIT: "+*venta.ClienteCI, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 4, "Pago: "+venta.MetodoPago, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Atendido por: "+venta.UsuarioNombre, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ─────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // product name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range venta.Items {
		nombre := truncar(item.Nombre, 22)
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "Bs. "+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Bs. "+venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	return pdf
}

// truncar shortens s to at most max runes, ending in an ellipsis. Cutting
// by bytes would split multi-byte runes in accented product names.
func truncar(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// WriteReporteVentasPDF streams the A4 sales report into w.
func WriteReporteVentasPDF(w io.Writer, negocio, titulo, subtitulo, generadoPor string, ventas []model.Venta) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 36

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 9, negocio, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, titulo, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, subtitulo, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Generado por: "+generadoPor, "", 1, "R", false, 0, "")
	pdf.Ln(3)

	if len(ventas) == 0 {
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(contentW, 8, "No se encontraron ventas para el período seleccionado.", "", 1, "C", false, 0, "")
		return pdf.Output(w)
	}

	// ── Summary ───────────────────────────────────────────────────────────────
	totalVentas := decimal.Zero
	for i := range ventas {
		totalVentas = totalVentas.Add(ventas[i].Total)
	}
	transacciones := len(ventas)
	promedio := totalVentas.Div(decimal.NewFromInt(int64(transacciones)))

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, "RESUMEN GENERAL", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Total de Ventas: Bs. "+totalVentas.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Número de Transacciones: %d", transacciones), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Promedio por Venta: Bs. "+promedio.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Per-sale blocks ───────────────────────────────────────────────────────
	for i := range ventas {
		v := &ventas[i]

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW*0.6, 5,
			fmt.Sprintf("%s — %s", v.CreatedAt.Format("02/01/2006 15:04"), v.ClienteNombre),
			"T", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 5,
			fmt.Sprintf("%s  |  Bs. %s", v.MetodoPago, v.Total.StringFixed(2)),
			"T", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(contentW, 4, "Vendedor: "+v.UsuarioNombre, "", 1, "L", false, 0, "")
		for _, item := range v.Items {
			pdf.CellFormat(contentW, 4,
				fmt.Sprintf("   %s x %d = Bs. %s", item.Nombre, item.Cantidad, item.Subtotal.StringFixed(2)),
				"", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}

	return pdf.Output(w)
}
