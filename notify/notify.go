// Package notify delivers booking confirmations over SMS. Delivery is best
// effort: a failed send is logged and reported to the caller only so the
// response message can say so, it never fails the booking itself.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"sevabook/models"
)

// ErrDisabled is returned when no gateway credentials were configured.
var ErrDisabled = errors.New("notify: sms delivery disabled")

// gatewayTimeout caps a single send at the transport level, so a hung
// provider can never hold a request goroutine past it.
const gatewayTimeout = 10 * time.Second

// Config carries the SMS gateway credentials and dialing prefix. It is passed
// in at construction; the package keeps no process-wide state.
type Config struct {
	AccountSID  string
	AuthToken   string
	From        string
	CountryCode string
}

func (c Config) enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != ""
}

// gateway is the one Twilio call we use, narrowed for test stubbing.
type gateway interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// Notifier sends confirmation texts through Twilio.
type Notifier struct {
	cfg Config
	api gateway
}

func New(cfg Config) *Notifier {
	n := &Notifier{cfg: cfg}
	if cfg.enabled() {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		})
		client.SetTimeout(gatewayTimeout)
		n.api = client.Api
	}
	return n
}

// ConfirmationBody formats the SMS text for a booking.
func ConfirmationBody(name string, b models.Booking) string {
	return fmt.Sprintf(
		"Hello %s, your booking is confirmed for %s, session: %s, slot: %s. Your token is %d.",
		name, b.Date, b.Session, b.Slot, b.Token,
	)
}

// SendConfirmation texts the user their booking details. Stored phone numbers
// are local 10-digit strings; the configured country code is prepended.
// The send is bounded by ctx and by the client-level gateway timeout.
func (n *Notifier) SendConfirmation(ctx context.Context, user models.User, b models.Booking) error {
	if n.api == nil {
		return ErrDisabled
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(n.cfg.CountryCode + user.Phone)
	params.SetFrom(n.cfg.From)
	params.SetBody(ConfirmationBody(user.Name, b))

	// The Twilio client has no context-aware call; run it on the side and
	// stop waiting when ctx expires. The transport timeout bounds the
	// leaked goroutine.
	done := make(chan error, 1)
	go func() {
		_, err := n.api.CreateMessage(params)
		done <- err
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-done:
	}
	if err != nil {
		// Trial accounts reject unverified recipients; treat it like any
		// other provider failure.
		logrus.WithFields(logrus.Fields{
			"card": b.Card,
			"date": b.Date,
		}).WithError(err).Warn("sms send failed")
		return fmt.Errorf("send sms: %w", err)
	}
	return nil
}
