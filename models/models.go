package models

// User is a registered card holder. Records are created out-of-band; this
// service only reads them.
type User struct {
	CardNumber string `json:"cardNumber" bson:"_id"`
	Name       string `json:"name" bson:"name"`
	Phone      string `json:"phone" bson:"phone"`
}

// Booking is one confirmed reservation, at most one per (card, date).
type Booking struct {
	ID        string `json:"id" bson:"id"`
	Card      string `json:"card" bson:"card"`
	Date      string `json:"date" bson:"date"`
	Session   string `json:"session" bson:"session"`
	Slot      string `json:"slot" bson:"slot"`
	Timing    string `json:"timing" bson:"timing"`
	Token     int    `json:"token" bson:"token"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}

// SlotCount tracks occupancy of one bookable slot. The document is keyed by
// the composite "date-session-slot" string and only ever incremented.
type SlotCount struct {
	Key   string `json:"key" bson:"_id"`
	Count int    `json:"count" bson:"count"`
}

// SlotKey builds the composite slot document key.
func SlotKey(date, session, slot string) string {
	return date + "-" + session + "-" + slot
}

// BookingPayload is the booking object returned to clients on /book and
// /bookingDetails. Shape matters to the confirm page; keep it stable.
type BookingPayload struct {
	Date    string `json:"date"`
	Session string `json:"session"`
	Slot    string `json:"slot"`
	Timing  string `json:"timing"`
	Token   int    `json:"token"`
}

// Payload converts a stored booking to its client-facing shape.
func (b Booking) Payload() BookingPayload {
	return BookingPayload{
		Date:    b.Date,
		Session: b.Session,
		Slot:    b.Slot,
		Timing:  b.Timing,
		Token:   b.Token,
	}
}
