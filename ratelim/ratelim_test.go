package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestLimitBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/book", nil)
		req.RemoteAddr = "10.0.0.1:51000"
		rec := httptest.NewRecorder()
		handler(rec, req, nil)
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Equal(t, http.StatusOK, statuses[1])
	assert.Equal(t, http.StatusTooManyRequests, statuses[2])
}

func TestLimitIsPerIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	for i, addr := range []string{"10.0.0.1:51000", "10.0.0.2:51000", "10.0.0.3:51000"} {
		req := httptest.NewRequest(http.MethodPost, "/book", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler(rec, req, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d from fresh IP should pass", i)
	}
}
