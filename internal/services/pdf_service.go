package services

import (
	"bytes"
	"database/sql"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"goldloan-backend/internal/models"
	"goldloan-backend/internal/utils"
)

// PDFService renders printable loan documents and payment receipts
type PDFService struct {
	db *sql.DB
}

// NewPDFService creates a new PDF service
func NewPDFService(db *sql.DB) *PDFService {
	return &PDFService{db: db}
}

// LoanDocument renders the pledge document for a loan
func (s *PDFService) LoanDocument(shopID, loanID int64) ([]byte, error) {
	loan, err := NewLoanService(s.db).GetByID(shopID, loanID)
	if err != nil {
		return nil, err
	}
	shop, err := NewShopService(s.db).GetByID(shopID)
	if err != nil {
		return nil, err
	}

	pdf := newDocument(shop, "GOLD LOAN PLEDGE DOCUMENT")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Loan No: "+loan.LoanNumber, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Date: "+utils.FormatDateIndian(loan.StartDate), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section(pdf, "Borrower")
	labelRow(pdf, "Name", loan.Customer.Name)
	labelRow(pdf, "Mobile", loan.Customer.Mobile)
	pdf.Ln(4)

	section(pdf, "Pledged Ornament")
	labelRow(pdf, "Type", loan.OrnamentType)
	labelRow(pdf, "Purity", loan.Purity)
	labelRow(pdf, "Gross Weight", utils.FormatWeight(loan.GrossWeightGrams))
	labelRow(pdf, "Stone Weight", utils.FormatWeight(loan.StoneWeightGrams))
	labelRow(pdf, "Net Weight", utils.FormatWeight(loan.NetWeightGrams))
	labelRow(pdf, "Gold Rate", fmt.Sprintf("Rs. %.2f / g", loan.GoldRatePerGram))
	labelRow(pdf, "Gold Value", "Rs. "+utils.FormatCurrency(loan.GoldValuePaise))
	pdf.Ln(4)

	section(pdf, "Loan Terms")
	labelRow(pdf, "Principal", "Rs. "+utils.FormatCurrency(loan.PrincipalAmountPaise))
	labelRow(pdf, "Interest Rate", fmt.Sprintf("%.2f%% per month basis", loan.InterestRatePercent))
	labelRow(pdf, "Tenure", fmt.Sprintf("%d months", loan.TenureMonths))
	labelRow(pdf, "Due Date", utils.FormatDateIndian(loan.DueDate))
	pdf.Ln(6)

	if err := stampQR(pdf, "LOAN:"+loan.LoanNumber); err != nil {
		return nil, err
	}

	pdf.Ln(14)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, "The borrower agrees that the pledged ornament remains with the shop "+
		"until the loan principal and all accrued interest are repaid in full.", "", "L", false)
	pdf.Ln(12)
	signatureRow(pdf)

	return output(pdf)
}

// PaymentReceipt renders the receipt for one payment
func (s *PDFService) PaymentReceipt(shopID, paymentID int64) ([]byte, error) {
	payment, err := NewPaymentService(s.db).GetByID(shopID, paymentID)
	if err != nil {
		return nil, err
	}
	loan, err := NewLoanService(s.db).GetByID(shopID, payment.LoanID)
	if err != nil {
		return nil, err
	}
	shop, err := NewShopService(s.db).GetByID(shopID)
	if err != nil {
		return nil, err
	}

	pdf := newDocument(shop, "PAYMENT RECEIPT")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Receipt No: "+payment.PaymentNumber, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Date: "+utils.FormatDateIndian(payment.PaymentDate), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	labelRow(pdf, "Loan No", loan.LoanNumber)
	labelRow(pdf, "Customer", loan.Customer.Name)
	labelRow(pdf, "Mode", string(payment.PaymentMode))
	if payment.PaymentReference != nil {
		labelRow(pdf, "Reference", *payment.PaymentReference)
	}
	pdf.Ln(4)

	section(pdf, "Amount")
	labelRow(pdf, "Paid", "Rs. "+utils.FormatCurrency(payment.AmountPaise))
	labelRow(pdf, "Towards Interest", "Rs. "+utils.FormatCurrency(payment.InterestPaidPaise))
	labelRow(pdf, "Towards Principal", "Rs. "+utils.FormatCurrency(payment.PrincipalPaidPaise))
	pdf.Ln(4)

	section(pdf, "Balance After Payment")
	labelRow(pdf, "Principal", "Rs. "+utils.FormatCurrency(payment.OutstandingPrincipalAfterPaise))
	labelRow(pdf, "Interest", "Rs. "+utils.FormatCurrency(payment.OutstandingInterestAfterPaise))
	if loan.Status == models.LoanStatusClosed {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, "LOAN FULLY REPAID AND CLOSED", "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	if err := stampQR(pdf, "PAYMENT:"+payment.PaymentNumber); err != nil {
		return nil, err
	}

	pdf.Ln(14)
	signatureRow(pdf)

	return output(pdf)
}

func newDocument(shop *models.Shop, title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, shop.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if shop.Address != nil {
		pdf.CellFormat(0, 5, *shop.Address, "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 5, "Mobile: "+shop.Mobile, "", 1, "C", false, 0, "")
	if shop.LicenseNumber != nil {
		pdf.CellFormat(0, 5, "License: "+*shop.LicenseNumber, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, title, "T", 1, "C", false, 0, "")
	pdf.Ln(4)
	return pdf
}

func section(pdf *gofpdf.Fpdf, name string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, name, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func labelRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(50, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

// stampQR embeds a QR code carrying the document number for quick lookup
func stampQR(pdf *gofpdf.Fpdf, content string) error {
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	name := "qr-" + content
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, 160, pdf.GetY(), 30, 30, false, opts, 0, "")
	return nil
}

func signatureRow(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(90, 6, "Customer Signature", "T", 0, "L", false, 0, "")
	pdf.CellFormat(10, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Authorized Signatory", "T", 1, "R", false, 0, "")
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
