package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"barberbook/internal/domain"
	"barberbook/internal/domain/models"
	"barberbook/internal/repositories"
	"barberbook/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders a PDF receipt for a confirmed booking.
type ReceiptService struct {
	Bookings  repositories.BookingRepository
	Customers repositories.CustomerRepository
	Haircuts  repositories.HaircutRepository
	RequestID string
	Loader    func(int64) (receiptData, error)
}

type receiptData struct {
	BookingID    int64
	Date         string
	Slot         string
	CustomerName string
	Email        string
	HaircutName  string
	Price        int64
	DurationMin  int
}

func (s ReceiptService) Generate(bookingID int64) ([]byte, string, error) {
	data, err := s.loadReceiptData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipt", "generate", fmt.Sprintf("booking_id=%d", bookingID))
	return buildReceiptPDF(data)
}

func (s ReceiptService) loadReceiptData(bookingID int64) (receiptData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}

	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return receiptData{}, err
	}
	if b.Status != models.StatusConfirmed {
		return receiptData{}, domain.ConflictError{Resource: "booking", Msg: "not confirmed"}
	}

	out := receiptData{
		BookingID: b.ID,
		Date:      b.Date,
		Slot:      b.Slot,
	}
	if c, err := s.Customers.GetByID(b.CustomerID); err == nil {
		out.CustomerName = strings.TrimSpace(c.FirstName + " " + c.Surname)
		out.Email = c.Email
	}
	if h, err := s.Haircuts.GetByID(b.HaircutID); err == nil {
		out.HaircutName = h.Name
		out.Price = h.Price
		out.DurationMin = h.DurationMin
	}
	return out, nil
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking No : #%d", d.BookingID),
		fmt.Sprintf("Customer   : %s", orDash(d.CustomerName)),
		fmt.Sprintf("Email      : %s", orDash(d.Email)),
		fmt.Sprintf("Service    : %s", orDash(d.HaircutName)),
		fmt.Sprintf("Date       : %s", orDash(d.Date)),
		fmt.Sprintf("Time       : %s", orDash(d.Slot)),
		fmt.Sprintf("Duration   : %d min", d.DurationMin),
		fmt.Sprintf("Issued     : %s", time.Now().Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+formatPrice(d.Price))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please arrive five minutes before your slot. Confirmed bookings can only be cancelled at the shop.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d.pdf", d.BookingID)
	return buf.Bytes(), filename, nil
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

// formatPrice renders a minor-unit amount, e.g. 2500 -> "$25.00".
func formatPrice(v int64) string {
	if v < 0 {
		v = 0
	}
	return fmt.Sprintf("$%d.%02d", v/100, v%100)
}
