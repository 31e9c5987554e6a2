package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"sevabook/models"
)

type fakeGateway struct {
	err    error
	params *openapi.CreateMessageParams
}

func (f *fakeGateway) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &openapi.ApiV2010Message{}, nil
}

// blockingGateway never answers until released, standing in for a hung
// provider.
type blockingGateway struct {
	release chan struct{}
}

func (g *blockingGateway) CreateMessage(*openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	<-g.release
	return &openapi.ApiV2010Message{}, nil
}

var testBooking = models.Booking{
	Card: "C100", Date: "2024-01-01", Session: "morning",
	Slot: "A1", Timing: "A1", Token: 4321,
}

func TestSendConfirmation(t *testing.T) {
	gw := &fakeGateway{}
	n := &Notifier{
		cfg: Config{From: "+15005550006", CountryCode: "+91"},
		api: gw,
	}

	user := models.User{CardNumber: "C100", Name: "Asha", Phone: "9876543210"}
	require.NoError(t, n.SendConfirmation(context.Background(), user, testBooking))

	require.NotNil(t, gw.params)
	assert.Equal(t, "+919876543210", *gw.params.To)
	assert.Equal(t, "+15005550006", *gw.params.From)
	assert.Equal(t,
		"Hello Asha, your booking is confirmed for 2024-01-01, session: morning, slot: A1. Your token is 4321.",
		*gw.params.Body,
	)
}

func TestSendConfirmationProviderError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("unverified recipient")}
	n := &Notifier{
		cfg: Config{From: "+15005550006", CountryCode: "+91"},
		api: gw,
	}

	err := n.SendConfirmation(context.Background(), models.User{Name: "Asha", Phone: "9876543210"}, testBooking)
	assert.Error(t, err)
}

func TestSendConfirmationHungGateway(t *testing.T) {
	gw := &blockingGateway{release: make(chan struct{})}
	defer close(gw.release)
	n := &Notifier{
		cfg: Config{From: "+15005550006", CountryCode: "+91"},
		api: gw,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := n.SendConfirmation(ctx, models.User{Name: "Asha", Phone: "9876543210"}, testBooking)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second, "send must stop waiting when the context expires")
}

func TestSendConfirmationDisabled(t *testing.T) {
	n := New(Config{CountryCode: "+91"})

	err := n.SendConfirmation(context.Background(), models.User{Name: "Asha", Phone: "9876543210"}, testBooking)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestConfirmationBody(t *testing.T) {
	body := ConfirmationBody("Asha", testBooking)
	assert.Contains(t, body, "Asha")
	assert.Contains(t, body, "2024-01-01")
	assert.Contains(t, body, "morning")
	assert.Contains(t, body, "A1")
	assert.Contains(t, body, "4321")
}
