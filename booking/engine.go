package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sevabook/faults"
	"sevabook/models"
	"sevabook/store"
	"sevabook/utils"
)

// ConfirmationSender delivers the booking SMS. Implemented by notify.Notifier.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, user models.User, b models.Booking) error
}

// smsTimeout bounds the confirmation send. The budget is independent of the
// storage deadline: by the time the SMS goes out the booking is committed,
// so an aborted request should not cut the send short.
const smsTimeout = 10 * time.Second

// Engine applies the booking rules: registered card, one booking per card per
// date, bounded slot occupancy, random 4-digit token.
type Engine struct {
	Users    store.UserStore
	Bookings store.BookingStore
	Slots    store.SlotStore
	Notifier ConfirmationSender
	Capacity int
}

// BookRequest is a validated booking attempt. All fields are non-empty by the
// time the engine sees them.
type BookRequest struct {
	Card    string
	Date    string
	Session string
	Slot    string
}

// Result carries everything the handler needs to respond and fan out side
// effects after a successful booking.
type Result struct {
	Booking   models.Booking
	User      models.User
	Occupancy int
	SMSSent   bool
}

// Book runs the full booking sequence. Domain violations come back as
// faults.Domain with the client-facing message; anything else is wrapped as
// infrastructure failure.
func (e *Engine) Book(ctx context.Context, req BookRequest) (Result, error) {
	user, err := e.Users.GetByCard(ctx, req.Card)
	if errors.Is(err, store.ErrNotFound) {
		return Result{}, faults.Domainf("User not registered!")
	}
	if err != nil {
		return Result{}, faults.Infraf(err, "user lookup")
	}

	exists, err := e.Bookings.Exists(ctx, req.Card, req.Date)
	if err != nil {
		return Result{}, faults.Infraf(err, "booking lookup")
	}
	if exists {
		return Result{}, faults.Domainf("Already booked for this date!")
	}

	slotKey := models.SlotKey(req.Date, req.Session, req.Slot)
	count, err := e.Slots.Reserve(ctx, slotKey, e.Capacity)
	if errors.Is(err, store.ErrSlotFull) {
		return Result{}, faults.Domainf("Slot is full!")
	}
	if err != nil {
		return Result{}, faults.Infraf(err, "slot reserve")
	}

	b := models.Booking{
		ID:        uuid.NewString(),
		Card:      req.Card,
		Date:      req.Date,
		Session:   req.Session,
		Slot:      req.Slot,
		Timing:    req.Slot,
		Token:     utils.GenerateToken(),
		CreatedAt: time.Now().Unix(),
	}

	if err := e.Bookings.Put(ctx, b); err != nil {
		// Give the seat back so occupancy is not charged without a
		// booking record behind it.
		if relErr := e.Slots.Release(ctx, slotKey); relErr != nil {
			logrus.WithField("slot", slotKey).WithError(relErr).Error("slot release failed")
		}
		if errors.Is(err, store.ErrDuplicateBooking) {
			return Result{}, faults.Domainf("Already booked for this date!")
		}
		return Result{}, faults.Infraf(err, "booking write")
	}

	res := Result{Booking: b, User: user, Occupancy: count}
	if e.Notifier != nil {
		smsCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), smsTimeout)
		res.SMSSent = e.Notifier.SendConfirmation(smsCtx, user, b) == nil
		cancel()
	}
	return res, nil
}
