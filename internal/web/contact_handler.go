package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cr-records/internal/contact"
	"cr-records/internal/logger"
	"cr-records/internal/ratelimit"
)

// ContactHandler relays contact form submissions. Responses never reveal the
// honeypot or which downstream chat failed.
type ContactHandler struct {
	Relay   *contact.Relay
	Limiter ratelimit.Limiter
	Logger  *logger.Logger
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Website string `json:"website"` // honeypot, must stay empty
}

func writeOK(w http.ResponseWriter, status int, ok bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]bool{"ok": ok})
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ip := ClientIP(r)
	allowed, err := h.Limiter.Allow(r.Context(), ip)
	if err != nil {
		h.Logger.Error("CONTACT", fmt.Sprintf("Rate limiter error for %s: %v", ip, err))
		writeOK(w, http.StatusInternalServerError, false)
		return
	}
	if !allowed {
		writeOK(w, http.StatusTooManyRequests, false)
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOK(w, http.StatusBadRequest, false)
		return
	}

	// Bots fill the hidden field; answer success and drop the message.
	if strings.TrimSpace(req.Website) != "" {
		h.Logger.Info("CONTACT", fmt.Sprintf("Honeypot tripped from %s", ip))
		writeOK(w, http.StatusOK, true)
		return
	}

	msg := contact.Message{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
		Company: strings.TrimSpace(req.Company),
		Phone:   strings.TrimSpace(req.Phone),
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		writeOK(w, http.StatusBadRequest, false)
		return
	}

	if err := h.Relay.Send(r.Context(), msg); err != nil {
		if !errors.Is(err, contact.ErrNotConfigured) {
			h.Logger.Error("CONTACT", fmt.Sprintf("Relay failure: %v", err))
		}
		writeOK(w, http.StatusInternalServerError, false)
		return
	}
	writeOK(w, http.StatusOK, true)
}
