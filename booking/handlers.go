package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"sevabook/faults"
	"sevabook/rdx"
	"sevabook/store"
	"sevabook/utils"
)

type Handler struct {
	Engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{Engine: engine}
}

type bookRequest struct {
	Card    string `json:"card"`
	Date    string `json:"date"`
	Session string `json:"session"`
	Slot    string `json:"slot"`
}

// Book handles POST /book. Failures are reported as HTTP 200 with a success
// flag and a message the slot-selection page shows as-is.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithFault(w, faults.Validationf("Fill all details!"))
		return
	}
	if req.Card == "" || req.Date == "" || req.Session == "" || req.Slot == "" {
		utils.RespondWithFault(w, faults.Validationf("Fill all details!"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.Engine.Book(ctx, BookRequest(req))
	if err != nil {
		if faults.KindOf(err) == faults.Infra {
			logrus.WithFields(logrus.Fields{
				"card": req.Card,
				"date": req.Date,
				"slot": req.Slot,
			}).WithError(err).Error("booking failed")
		}
		utils.RespondWithFault(w, err)
		return
	}

	// Side effects after commit: live occupancy feed and confirm-page cache.
	BroadcastOccupancy(res.Booking.Date, res.Booking.Session, res.Booking.Slot, res.Occupancy)
	if err := rdx.CacheBooking(ctx, res.Booking); err != nil {
		logrus.WithError(err).Debug("booking cache write skipped")
	}

	message := "Booking confirmed! SMS sent."
	if !res.SMSSent {
		message = "Booking confirmed! (SMS could not be sent)"
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": message,
		"booking": res.Booking.Payload(),
	})
}

// BookingDetails handles GET /bookingDetails for the confirm page. Reads go
// through the Redis cache first; Mongo remains the source of truth.
func (h *Handler) BookingDetails(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	card := r.URL.Query().Get("card")
	date := r.URL.Query().Get("date")
	if card == "" || date == "" {
		utils.RespondWithFault(w, faults.Validationf("Missing card or date!"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if cached, err := rdx.CachedBooking(ctx, card, date); err == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "booking": cached.Payload()})
		return
	}

	b, err := h.Engine.Bookings.Get(ctx, card, date)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondWithFault(w, faults.Domainf("Booking not found!"))
		return
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"card": card, "date": date}).WithError(err).Error("booking details lookup failed")
		utils.RespondWithFault(w, faults.Infraf(err, "booking lookup"))
		return
	}

	if err := rdx.CacheBooking(ctx, b); err != nil {
		logrus.WithError(err).Debug("booking cache write skipped")
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "booking": b.Payload()})
}
