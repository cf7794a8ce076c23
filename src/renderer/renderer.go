package renderer

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/zwennpay/statements/src/logger"
	"github.com/zwennpay/statements/src/models"
	"github.com/zwennpay/statements/src/utils"
)

// StatementRenderer turns a matched master record plus aggregated totals into
// a statement-of-account document.
type StatementRenderer interface {
	Render(master models.MasterRecord, totals models.AggregatedTotals, period models.PeriodWindow) (*models.StatementDocument, error)
}

// Options carries the fixed statement branding and the issuer identity block.
type Options struct {
	CurrencyCode        string
	VATRatePercent      string
	LetterheadImagePath string

	IssuerName    string
	IssuerCity    string
	IssuerLicense string
	IssuerPhone   string
	IssuerEmail   string

	// Clock supplies the statement issue date; defaults to time.Now.
	Clock func() time.Time
}

type pdfRenderer struct {
	opts Options
}

// NewStatementRenderer creates a renderer with the given options.
func NewStatementRenderer(opts Options) StatementRenderer {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &pdfRenderer{opts: opts}
}

// Brand palette of the statement layout.
var (
	brandR, brandG, brandB = 139, 47, 139 // #8b2f8b
	tintR, tintG, tintB    = 245, 230, 240
)

const (
	pageLeftMargin = 19.0
	contentWidth   = 172.0 // A4 width minus both margins
	labelWidth     = 38.0
)

func (r *pdfRenderer) Render(master models.MasterRecord, totals models.AggregatedTotals, period models.PeriodWindow) (*models.StatementDocument, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// pin the embedded creation date so identical inputs yield identical bytes
	pdf.SetCreationDate(r.opts.Clock())
	// sort catalog entries so font object ordering doesn't vary between runs
	pdf.SetCatalogSort(true)
	pdf.SetMargins(pageLeftMargin, 13, pageLeftMargin)
	pdf.SetAutoPageBreak(true, 13)
	pdf.AddPage()

	r.drawLetterhead(pdf)
	r.drawTitle(pdf)
	r.drawMetadataBlock(pdf, master, period)
	r.drawCustomerBlock(pdf, master)
	r.drawTotalsTable(pdf, totals)
	r.drawSummaryParagraph(pdf, period)
	r.drawFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("statement assembly failed for %q: %w", master.Identity(), err)
	}

	doc := &models.StatementDocument{
		Filename: statementFilename(master.Identity(), period),
		Content:  buf.Bytes(),
	}
	logger.L.Debug("Statement rendered", "filename", doc.Filename, "bytes", len(doc.Content))
	return doc, nil
}

// drawLetterhead places the letterhead image when the asset exists. A missing
// asset is skipped silently; it is not an error.
func (r *pdfRenderer) drawLetterhead(pdf *fpdf.Fpdf) {
	path := r.opts.LetterheadImagePath
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		logger.L.Debug("Letterhead image not found, skipping", "path", path)
		return
	}
	pdf.ImageOptions(path, pageLeftMargin, 13, 76, 15, false, fpdf.ImageOptions{}, 0, "")
	pdf.SetY(33)
}

func (r *pdfRenderer) drawTitle(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.CellFormat(contentWidth, 12, "STATEMENT OF ACCOUNT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(contentWidth, 7, "Monthly Transaction Summary", "", 1, "C", false, 0, "")
	pdf.Ln(6)
}

func (r *pdfRenderer) drawMetadataBlock(pdf *fpdf.Fpdf, master models.MasterRecord, period models.PeriodWindow) {
	issueDate := r.opts.Clock().Format(models.PeriodDateLayout)
	rows := [][2]string{
		{"Statement Period:", period.StartLabel() + " - " + period.EndLabel()},
		{"Statement Date:", issueDate},
		{"Account No.:", master.BankAccountNo.Display()},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(brandR, brandG, brandB)
		pdf.CellFormat(labelWidth, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(contentWidth-labelWidth, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

// drawCustomerBlock renders name, address and contact details on the tinted
// background box. Absent fields render the N/A sentinel, never an empty cell.
func (r *pdfRenderer) drawCustomerBlock(pdf *fpdf.Fpdf, master models.MasterRecord) {
	contact := master.Contact.Display() + " | " + master.Email.Display()
	rows := [][2]string{
		{"Customer Name:", master.DisplayName()},
		{"Address:", master.Address.Display()},
		{"Contact:", contact},
	}

	pdf.SetFillColor(tintR, tintG, tintB)
	pdf.SetDrawColor(brandR, brandG, brandB)
	pdf.SetLineWidth(0.6)
	boxTop := pdf.GetY()
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(brandR, brandG, brandB)
		pdf.CellFormat(labelWidth, 9, "  "+row[0], "", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentWidth-labelWidth, 9, row[1], "", 1, "L", true, 0, "")
	}
	pdf.Rect(pageLeftMargin, boxTop, contentWidth, pdf.GetY()-boxTop, "D")
	pdf.Ln(8)
}

func (r *pdfRenderer) drawTotalsTable(pdf *fpdf.Fpdf, totals models.AggregatedTotals) {
	headers := []string{"Total Transactions", "Total Transaction Charges", "VAT on Transaction Charges", "Amount Credited"}
	values := []string{
		utils.FormatMoney(r.opts.CurrencyCode, totals.TransactionAmount),
		utils.FormatMoney(r.opts.CurrencyCode, totals.TransactionCharges),
		utils.FormatMoney(r.opts.CurrencyCode, totals.TransactionTax),
		utils.FormatMoney(r.opts.CurrencyCode, totals.SettledAmount),
	}
	colWidth := contentWidth / 4

	pdf.SetFillColor(brandR, brandG, brandB)
	pdf.SetDrawColor(brandR, brandG, brandB)
	pdf.SetTextColor(245, 245, 245)
	pdf.SetFont("Helvetica", "B", 8)
	for _, h := range headers {
		pdf.CellFormat(colWidth, 10, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFillColor(255, 255, 255)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 11)
	for _, v := range values {
		pdf.CellFormat(colWidth, 12, v, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.Ln(8)
}

func (r *pdfRenderer) drawSummaryParagraph(pdf *fpdf.Fpdf, period models.PeriodWindow) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(contentWidth, 5, "Statement Summary:", "", 1, "L", false, 0, "")

	text := fmt.Sprintf(
		"This statement shows the transaction activity for the period from %s to %s. "+
			"The amount credited represents the net settlement after deducting all transaction charges and "+
			"applicable VAT at %s%% as per Mauritius tax regulations.",
		period.StartLabel(), period.EndLabel(), r.opts.VATRatePercent)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(contentWidth, 5, text, "", "L", false)
	pdf.Ln(8)
}

func (r *pdfRenderer) drawFooter(pdf *fpdf.Fpdf) {
	text := fmt.Sprintf(
		"This statement is issued by %s, %s, a Payment Service Provider licensed by the Bank of Mauritius "+
			"(License: %s). For inquiries or disputes, contact us at %s or %s. "+
			"This document is confidential and intended only for the account holder.",
		r.opts.IssuerName, r.opts.IssuerCity, r.opts.IssuerLicense, r.opts.IssuerPhone, r.opts.IssuerEmail)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.MultiCell(contentWidth, 4, text, "", "C", false)
}

// statementFilename derives the output filename from the match identity and
// the period boundaries, e.g. SOA_Acme_01_November_2025_30_November_2025.pdf.
func statementFilename(identity string, period models.PeriodWindow) string {
	return fmt.Sprintf("SOA_%s_%s_%s.pdf",
		utils.SanitizeFilenamePart(identity),
		utils.SanitizeFilenamePart(period.StartLabel()),
		utils.SanitizeFilenamePart(period.EndLabel()))
}
