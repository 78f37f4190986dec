// Package certificate renders a PDF completion certificate for a run.
package certificate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
)

// ErrNoName is returned when the certificate has no recipient.
var ErrNoName = errors.New("certificate: name is required")

// Category is one row of the breakdown table.
type Category struct {
	Name   string
	Key    string
	Count  int
	Points int
}

// Data is everything printed on the certificate.
type Data struct {
	RunID     string
	Name      string
	Title     string // quiz title, e.g. RESET
	Score     int
	MaxScore  int
	Answered  int
	Total     int
	Date      time.Time
	Breakdown []Category
}

// Finished reports whether every question was answered.
func (d Data) Finished() bool {
	return d.Total > 0 && d.Answered >= d.Total
}

// Write renders the certificate as PDF into w.
func Write(w io.Writer, data Data) error {
	if data.Name == "" {
		return ErrNoName
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(data.Title+" certificate", true)
	pdf.SetAuthor("mindreset", true)
	if !data.Date.IsZero() {
		pdf.SetCreationDate(data.Date)
	}
	pdf.AddPage()

	pdf.SetDrawColor(239, 68, 68)
	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, 277, 190, "D")

	pdf.SetFont("Helvetica", "B", 28)
	pdf.Ln(8)
	pdf.CellFormat(0, 16, "Certificate of Mind Mastery", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 16)
	subtitle := fmt.Sprintf("%s: %d missions", data.Title, data.Total)
	pdf.CellFormat(0, 10, subtitle, "", 1, "C", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, data.Name, "", 1, "C", false, 0, "")

	status := "IN PROGRESS"
	if data.Finished() {
		status = "GAME CLEARED"
	}
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("%s | %d XP of %d | Missions: %d/%d | Date: %s",
			status, data.Score, data.MaxScore, data.Answered, data.Total, data.Date.Format("2006-01-02")),
		"", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Brain System Breakdown", "", 1, "C", false, 0, "")

	// Table header, centered on the page.
	left := (297.0 - 190.0) / 2
	pdf.SetX(left)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(100, 7, "Brain system", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Answers", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 7, "XP", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 7, "Share", "1", 1, "C", false, 0, "")

	rows := append([]Category(nil), data.Breakdown...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.SetX(left)
		pdf.CellFormat(100, 7, fmt.Sprintf("%s (%s)", row.Name, row.Key), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", row.Count), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", row.Points), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.0f%%", pct(row.Count, data.Answered)), "1", 1, "C", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 11)
	pdf.MultiCell(0, 6,
		"Awarded for choosing the neocortex over the reptilian brain, one mission at a time.",
		"", "C", false)

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Run ID: "+data.RunID, "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render certificate: %w", err)
	}
	return nil
}

// Bytes renders the certificate into memory.
func Bytes(data Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pct(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) * 100 / float64(b)
}
