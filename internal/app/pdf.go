package app

import (
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/vbchivu/ai-data-extractor-scrapper/internal/schema"
)

// writeRecordPDF renders the record as a minimal one-page PDF, one labelled
// block per field in schema order.
func writeRecordPDF(record schema.Record, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so the euro sign in placeholder fees survives.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Program Data Extract", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, key := range schema.Keys() {
		label := strings.ReplaceAll(key, "_", " ")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, tr(label), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5, tr(record[key]), "", "L", false)
		pdf.Ln(2)
	}

	return pdf.OutputFileAndClose(outPath)
}
