// Package auth implements the identity check: a card number with the exact
// stored name and phone. No session or token is issued; the frontend simply
// proceeds to slot selection on success.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"sevabook/faults"
	"sevabook/store"
	"sevabook/utils"
)

type Handler struct {
	Users store.UserStore
}

func NewHandler(users store.UserStore) *Handler {
	return &Handler{Users: users}
}

type loginRequest struct {
	CardNumber string `json:"cardNumber"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

// Login verifies card number, name and phone against the stored user record.
// Every outcome is an HTTP 200 with a success flag; the pages key off the
// message text.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithFault(w, faults.Validationf("Please fill all details!"))
		return
	}
	if req.CardNumber == "" || req.Name == "" || req.Phone == "" {
		utils.RespondWithFault(w, faults.Validationf("Please fill all details!"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByCard(ctx, req.CardNumber)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondWithFault(w, faults.Domainf("User not registered!"))
		return
	}
	if err != nil {
		logrus.WithField("card", req.CardNumber).WithError(err).Error("login lookup failed")
		utils.RespondWithFault(w, faults.Infraf(err, "user lookup"))
		return
	}

	// Exact, case-sensitive match on both fields.
	if user.Name != req.Name || user.Phone != req.Phone {
		utils.RespondWithFault(w, faults.Domainf("Invalid name or phone number!"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Login successful!"})
}
