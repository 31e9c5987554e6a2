package booking

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"sevabook/store"
)

// Slip handles GET /bookingSlip, a downloadable PDF of the confirmation with
// the token rendered as a QR code for gate scanning.
func (h *Handler) Slip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	card := r.URL.Query().Get("card")
	date := r.URL.Query().Get("date")
	if card == "" || date == "" {
		http.Error(w, "Missing card or date!", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.Engine.Bookings.Get(ctx, card, date)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Booking not found!", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Server error.", http.StatusInternalServerError)
		return
	}

	user, err := h.Engine.Users.GetByCard(ctx, card)
	if err != nil {
		http.Error(w, "Server error.", http.StatusInternalServerError)
		return
	}

	qrPayload := fmt.Sprintf("%s|%s|%d", b.Card, b.Date, b.Token)
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Slip")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", user.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", b.Date))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Session: %s", b.Session))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Slot: %s", b.Slot))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Token: %d", b.Token))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=booking-%s.pdf", b.Date))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
