package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"cr-records/internal/admin"
	"cr-records/internal/logger"
)

// AdminHandler exposes the operator dashboard API. Every route except login
// sits behind the session middleware.
type AdminHandler struct {
	Admin  *admin.Service
	Logger *logger.Logger
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// RequireSession rejects requests whose bearer token does not verify against
// the stored session.
func (h *AdminHandler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			writeError(w, http.StatusUnauthorized, "Missing session token")
			return
		}
		if err := h.Admin.VerifySession(r.Context(), token); err != nil {
			h.Logger.LogSecurity("SESSION_REJECTED", ClientIP(r))
			writeError(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.Admin.Login(r.Context(), req.Password)
	if errors.Is(err, admin.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Incorrect password")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not create session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not end session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Admin.Stats(r.Context()))
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	search := r.URL.Query().Get("search")
	writeJSON(w, http.StatusOK, h.Admin.ListOrders(r.Context(), status, search))
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Admin.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, admin.ErrOrderNotFound) {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *AdminHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var changes admin.OrderChanges
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.Admin.SaveOrderChanges(r.Context(), chi.URLParam(r, "id"), changes)
	if errors.Is(err, admin.ErrOrderNotFound) {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not save order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	csv, err := h.Admin.ExportCSV(r.Context())
	if errors.Is(err, admin.ErrNoOrders) {
		writeError(w, http.StatusNotFound, "No orders to export")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.Admin.ExportFilename()))
	w.Write([]byte(csv))
}

func (h *AdminHandler) DownloadBackup(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Admin.Backup(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Backup failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.Admin.BackupFilename()))
	w.Write(raw)
}

// RestoreBackup replaces the whole order collection, so the caller must opt in
// with confirm:true alongside the backup payload.
func (h *AdminHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Confirm bool            `json:"confirm"`
		Backup  json.RawMessage `json:"backup"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Could not read backup file")
		return
	}
	if !req.Confirm {
		writeError(w, http.StatusBadRequest, "Restore replaces all orders; set confirm to proceed")
		return
	}

	count, err := h.Admin.Restore(r.Context(), req.Backup)
	if errors.Is(err, admin.ErrInvalidBackup) {
		writeError(w, http.StatusBadRequest, "Invalid backup file")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Restore failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"restored": count})
}

func (h *AdminHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	page, err := h.Admin.Invoice(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, admin.ErrOrderNotFound) {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not render invoice")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (h *AdminHandler) GetTaxSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Admin.TaxSettingsPercent(r.Context()))
}

func (h *AdminHandler) SaveTaxSettings(w http.ResponseWriter, r *http.Request) {
	var percent admin.TaxSettingsPercent
	if err := json.NewDecoder(r.Body).Decode(&percent); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.Admin.SaveTaxSettingsPercent(r.Context(), percent); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not save tax settings")
		return
	}
	writeJSON(w, http.StatusOK, percent)
}
