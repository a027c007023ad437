package admin

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"cr-records/internal/config"
	"cr-records/internal/logger"
	"cr-records/internal/models"
	"cr-records/internal/store"
)

// Publisher streams order update events. Nil disables publishing.
type Publisher interface {
	PublishOrderUpdated(order models.Order) error
}

// Service is the operator-facing order manager: authentication, dashboard
// statistics, listing, per-order updates, reporting and tax settings.
type Service struct {
	Data      *store.Collections
	Publisher Publisher
	Logger    *logger.Logger
	Config    config.AdminConfig

	now func() time.Time
}

func NewService(data *store.Collections, pub Publisher, log *logger.Logger, cfg config.AdminConfig) *Service {
	return &Service{Data: data, Publisher: pub, Logger: log, Config: cfg, now: time.Now}
}

// ---------------- AUTH ----------------

// Login hashes the submitted password and compares it against the configured
// reference hash. On match it issues a session token and persists the session
// flag. There is no lockout or backoff on repeated attempts.
func (s *Service) Login(ctx context.Context, password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	digest := hex.EncodeToString(sum[:])

	if subtle.ConstantTimeCompare([]byte(digest), []byte(strings.ToLower(s.Config.PasswordHash))) != 1 {
		s.Logger.LogSecurity("LOGIN_FAILED", "Admin password mismatch")
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub": "admin",
		"jti": uuid.NewString(),
		"iat": s.now().Unix(),
		"exp": s.now().Add(s.Config.SessionTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	if err := s.Data.SaveSession(ctx, token); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	s.Logger.Info("ADMIN", "Operator logged in")
	return token, nil
}

// VerifySession checks the token signature, its expiry and that it is still
// the stored session (logout invalidates it).
func (s *Service) VerifySession(ctx context.Context, token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.Config.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidSession
	}
	if s.Data.LoadSession(ctx) != token {
		return ErrInvalidSession
	}
	return nil
}

// Logout destroys the stored session.
func (s *Service) Logout(ctx context.Context) error {
	return s.Data.ClearSession(ctx)
}

// ---------------- DASHBOARD ----------------

// Stats is the dashboard header, recomputed by scanning the whole collection.
type Stats struct {
	TotalOrders int     `json:"totalOrders"`
	Pending     int     `json:"pending"`
	Shipped     int     `json:"shipped"`
	Revenue     float64 `json:"revenue"`
}

func (s *Service) Stats(ctx context.Context) Stats {
	orders := s.Data.LoadOrders(ctx)
	stats := Stats{TotalOrders: len(orders)}
	for _, order := range orders {
		switch order.Status {
		case models.StatusPending, models.StatusProcessing:
			stats.Pending++
		case models.StatusShipped, models.StatusDelivered:
			stats.Shipped++
		}
		stats.Revenue += order.Total
	}
	return stats
}

// ListOrders applies an optional status-equality filter and a case-insensitive
// free-text search over order id, customer name and customer email. Results
// are always sorted most recent first.
func (s *Service) ListOrders(ctx context.Context, status, search string) []models.Order {
	orders := s.Data.LoadOrders(ctx)

	filtered := orders[:0:0]
	query := strings.ToLower(strings.TrimSpace(search))
	for _, order := range orders {
		if status != "" && string(order.Status) != status {
			continue
		}
		if query != "" && !matchesQuery(order, query) {
			continue
		}
		filtered = append(filtered, order)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered
}

func matchesQuery(order models.Order, query string) bool {
	return strings.Contains(strings.ToLower(order.ID), query) ||
		strings.Contains(strings.ToLower(order.Customer.FullName), query) ||
		strings.Contains(strings.ToLower(order.Customer.Email), query)
}

// GetOrder loads one order by id.
func (s *Service) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	for _, order := range s.Data.LoadOrders(ctx) {
		if order.ID == id {
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}

// ---------------- UPDATES ----------------

// OrderChanges is the full set of admin-editable fields. Everything else on
// an order is immutable from the admin side, preserving the original
// transaction record.
type OrderChanges struct {
	Status         models.OrderStatus `json:"status"`
	Carrier        string             `json:"carrier"`
	TrackingNumber string             `json:"trackingNumber"`
	Notes          string             `json:"notes"`
}

// SaveOrderChanges patches exactly the four editable fields on the matching
// order and persists the whole collection.
func (s *Service) SaveOrderChanges(ctx context.Context, id string, changes OrderChanges) (*models.Order, error) {
	orders := s.Data.LoadOrders(ctx)
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		orders[i].Status = changes.Status
		orders[i].Carrier = changes.Carrier
		orders[i].TrackingNumber = changes.TrackingNumber
		orders[i].Notes = changes.Notes

		if err := s.Data.SaveOrders(ctx, orders); err != nil {
			return nil, fmt.Errorf("save orders: %w", err)
		}
		updated := orders[i]
		if s.Publisher != nil {
			if err := s.Publisher.PublishOrderUpdated(updated); err != nil {
				s.Logger.Error("KAFKA", fmt.Sprintf("Publish error (order updated): %v", err))
			}
		}
		s.Logger.LogOrder("UPDATED", id, fmt.Sprintf("status=%s carrier=%s", changes.Status, changes.Carrier))
		return &updated, nil
	}
	return nil, ErrOrderNotFound
}

// ---------------- TAX SETTINGS ----------------

// TaxSettingsPercent returns the stored fractions as display percentages.
type TaxSettingsPercent struct {
	US    float64 `json:"US"`
	CA    float64 `json:"CA"`
	Other float64 `json:"OTHER"`
}

func (s *Service) TaxSettingsPercent(ctx context.Context) TaxSettingsPercent {
	settings := s.Data.LoadTaxSettings(ctx)
	return TaxSettingsPercent{
		US:    settings.US * 100,
		CA:    settings.CA * 100,
		Other: settings.Other * 100,
	}
}

// SaveTaxSettingsPercent converts percentages back to fractions and persists
// them. Out-of-range values are accepted as-is, matching the admin form.
func (s *Service) SaveTaxSettingsPercent(ctx context.Context, percent TaxSettingsPercent) error {
	settings := models.TaxSettings{
		US:    percent.US / 100,
		CA:    percent.CA / 100,
		Other: percent.Other / 100,
	}
	if err := s.Data.SaveTaxSettings(ctx, settings); err != nil {
		return fmt.Errorf("save tax settings: %w", err)
	}
	return nil
}
