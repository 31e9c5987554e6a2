package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sevabook/models"
	"sevabook/store"
	"sevabook/utils"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mem := store.NewMemory()
	mem.SeedUser(models.User{CardNumber: "C100", Name: "Asha", Phone: "9876543210"})

	router := httprouter.New()
	router.POST("/login", NewHandler(mem).Login)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func postLogin(t *testing.T, ts *httptest.Server, body utils.M) loginResponse {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/login", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestLoginSuccess(t *testing.T) {
	ts := newTestServer(t)

	out := postLogin(t, ts, utils.M{"cardNumber": "C100", "name": "Asha", "phone": "9876543210"})
	assert.True(t, out.Success)
	assert.Equal(t, "Login successful!", out.Message)
}

func TestLoginMissingFields(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []utils.M{
		{},
		{"cardNumber": "C100"},
		{"cardNumber": "C100", "name": "Asha"},
		{"name": "Asha", "phone": "9876543210"},
	} {
		out := postLogin(t, ts, body)
		assert.False(t, out.Success)
		assert.Equal(t, "Please fill all details!", out.Message)
	}
}

func TestLoginUnknownCard(t *testing.T) {
	ts := newTestServer(t)

	out := postLogin(t, ts, utils.M{"cardNumber": "C999", "name": "Asha", "phone": "9876543210"})
	assert.False(t, out.Success)
	assert.Equal(t, "User not registered!", out.Message)
}

func TestLoginMismatch(t *testing.T) {
	ts := newTestServer(t)

	cases := []utils.M{
		{"cardNumber": "C100", "name": "Asha", "phone": "0000000000"},
		{"cardNumber": "C100", "name": "Someone", "phone": "9876543210"},
		// Matching is case-sensitive.
		{"cardNumber": "C100", "name": "asha", "phone": "9876543210"},
	}
	for _, body := range cases {
		out := postLogin(t, ts, body)
		assert.False(t, out.Success)
		assert.Equal(t, "Invalid name or phone number!", out.Message)
	}
}
