package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cr-records/internal/cart"
	"cr-records/internal/config"
	"cr-records/internal/logger"
	"cr-records/internal/models"
	"cr-records/internal/store"
	"cr-records/internal/utils"
)

// Publisher streams order lifecycle events. A nil Publisher disables
// publishing; publish failures never fail a checkout.
type Publisher interface {
	PublishOrderPlaced(order models.Order) error
}

// ShippingOption is one selectable shipping method with its flat cost.
type ShippingOption struct {
	Method string  `json:"method"`
	Cost   float64 `json:"cost"`
}

// DefaultShippingOptions is the catalog offered at checkout.
var DefaultShippingOptions = []ShippingOption{
	{Method: "Standard Shipping", Cost: 5.99},
	{Method: "Express Shipping", Cost: 14.99},
}

// PlaceOrderRequest carries the buyer's checkout form.
type PlaceOrderRequest struct {
	Customer       models.Customer      `json:"customer"`
	ShippingMethod string               `json:"shippingMethod"`
	Method         models.PaymentMethod `json:"paymentMethod"`

	VenmoHandle    string `json:"venmoHandle,omitempty"`
	VenmoReference string `json:"venmoReference,omitempty"`

	BankAccountHolder string `json:"bankAccountHolder,omitempty"`
	BankReference     string `json:"bankReference,omitempty"`

	SenderWallet    string `json:"senderWallet,omitempty"`
	TxHash          string `json:"txHash,omitempty"`
	WalletConfirmed bool   `json:"walletConfirmed,omitempty"`

	CustomerNotes string `json:"customerNotes,omitempty"`
}

// Confirmation is surfaced to the buyer after a successful commit.
type Confirmation struct {
	OrderID       string   `json:"orderId"`
	PaymentMethod string   `json:"paymentMethod"`
	Lines         []string `json:"lines"`
}

// Summary is the live cart snapshot shown on the checkout page.
type Summary struct {
	Items    []models.CartItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
	Shipping float64           `json:"shipping"`
	Total    float64           `json:"total"`
	Options  []ShippingOption  `json:"shippingOptions"`
}

// Service builds orders from the cart. On a successful commit the cart is
// cleared; on any failure the cart is left exactly as it was.
type Service struct {
	Cart      *cart.Service
	Data      *store.Collections
	Publisher Publisher
	Logger    *logger.Logger
	Payment   config.PaymentConfig
	Options   []ShippingOption

	now func() time.Time
}

func NewService(cartSvc *cart.Service, data *store.Collections, pub Publisher, log *logger.Logger, payment config.PaymentConfig) *Service {
	return &Service{
		Cart:      cartSvc,
		Data:      data,
		Publisher: pub,
		Logger:    log,
		Payment:   payment,
		Options:   DefaultShippingOptions,
		now:       time.Now,
	}
}

// Summarize renders the current cart with the given shipping selection. An
// empty cart shows the fallback shipping cost for display only.
func (s *Service) Summarize(ctx context.Context, shippingMethod string) Summary {
	items := s.Cart.Items(ctx)
	subtotal := models.CartSubtotal(items)

	shipping := s.Payment.FallbackShippingCost
	if option, ok := s.shippingOption(shippingMethod); ok {
		shipping = option.Cost
	}

	return Summary{
		Items:    items,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
		Options:  s.Options,
	}
}

func (s *Service) shippingOption(method string) (ShippingOption, bool) {
	for _, option := range s.Options {
		if option.Method == method {
			return option, true
		}
	}
	return ShippingOption{}, false
}

// PlaceOrder validates the request, computes totals, persists the order and
// clears the cart. The cart is cleared only after the order save succeeds so
// a failed checkout can simply be retried.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Confirmation, error) {
	payment, paymentStatus, err := s.buildPayment(req)
	if err != nil {
		return nil, err
	}

	if err := validateCustomer(req.Customer); err != nil {
		return nil, err
	}

	option, ok := s.shippingOption(req.ShippingMethod)
	if !ok {
		return nil, ErrNoShippingSelected
	}

	items := s.Cart.Items(ctx)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := models.CartSubtotal(items)
	rates := s.Data.LoadTaxSettings(ctx)
	tax := subtotal * rates.RateFor(req.Customer.Country)
	total := subtotal + option.Cost + tax

	order := models.Order{
		ID:            utils.GenerateOrderID(),
		CreatedAt:     s.now().UTC(),
		Customer:      req.Customer,
		Items:         models.CopyItems(items),
		Subtotal:      subtotal,
		Shipping:      models.Shipping{Method: option.Method, Cost: option.Cost},
		Tax:           tax,
		Total:         total,
		Status:        models.StatusPending,
		PaymentMethod: req.Method.Label(),
		PaymentStatus: paymentStatus,
		Payment:       payment,
		CustomerNotes: strings.TrimSpace(req.CustomerNotes),
	}

	orders := s.Data.LoadOrders(ctx)
	orders = append(orders, order)
	if err := s.Data.SaveOrders(ctx, orders); err != nil {
		s.Logger.Error("CHECKOUT", fmt.Sprintf("Failed to save order %s: %v", order.ID, err))
		return nil, fmt.Errorf("save order: %w", err)
	}

	// Order is durable; the cart can go. A failed cart clear is logged but
	// does not undo the order.
	if err := s.Cart.Clear(ctx); err != nil {
		s.Logger.Warn("CHECKOUT", fmt.Sprintf("Order %s saved but cart clear failed: %v", order.ID, err))
	}

	if s.Publisher != nil {
		if err := s.Publisher.PublishOrderPlaced(order); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("Publish error (order placed): %v", err))
		}
	}

	s.Logger.LogOrder("PLACED", order.ID, fmt.Sprintf("%s, total $%.2f", order.PaymentMethod, order.Total))

	return &Confirmation{
		OrderID:       order.ID,
		PaymentMethod: order.PaymentMethod,
		Lines:         order.Payment.InstructionLines(),
	}, nil
}

func (s *Service) buildPayment(req PlaceOrderRequest) (models.PaymentDetails, string, error) {
	switch req.Method {
	case models.PaymentVenmo:
		handle := strings.TrimSpace(req.VenmoHandle)
		if handle == "" {
			return models.PaymentDetails{}, "", ErrMissingVenmoHandle
		}
		details := models.PaymentDetails{
			Method: models.PaymentVenmo,
			Venmo: &models.VenmoPayment{
				Provider:        "Venmo",
				RecipientHandle: s.Payment.VenmoHandle,
				RecipientURL:    s.Payment.VenmoURL,
				SenderHandle:    handle,
				Reference:       strings.TrimSpace(req.VenmoReference),
			},
		}
		return details, req.Method.PendingStatus(), nil

	case models.PaymentBank:
		holder := strings.TrimSpace(req.BankAccountHolder)
		reference := strings.TrimSpace(req.BankReference)
		if holder == "" {
			return models.PaymentDetails{}, "", ErrMissingBankHolder
		}
		if reference == "" {
			return models.PaymentDetails{}, "", ErrMissingBankRef
		}
		details := models.PaymentDetails{
			Method: models.PaymentBank,
			Bank: &models.BankPayment{
				Provider:      "Bank Account",
				AccountHolder: holder,
				Reference:     reference,
			},
		}
		return details, req.Method.PendingStatus(), nil

	case models.PaymentAtomOne:
		wallet := strings.TrimSpace(req.SenderWallet)
		txHash := strings.TrimSpace(req.TxHash)
		if wallet == "" {
			return models.PaymentDetails{}, "", ErrMissingSenderWallet
		}
		// Coarse sanity check, not cryptographic verification.
		if len(txHash) < s.Payment.MinTxHashLength {
			return models.PaymentDetails{}, "", ErrInvalidTxHash
		}
		if !req.WalletConfirmed {
			return models.PaymentDetails{}, "", ErrWalletNotConfirmed
		}
		details := models.PaymentDetails{
			Method: models.PaymentAtomOne,
			Wallet: &models.WalletPayment{
				Network:         "Atom one",
				RecipientWallet: s.Payment.WalletAddress,
				SenderWallet:    wallet,
				TxHash:          txHash,
			},
		}
		return details, req.Method.PendingStatus(), nil
	}
	return models.PaymentDetails{}, "", ErrUnknownPayment
}

func validateCustomer(c models.Customer) error {
	required := []string{c.FullName, c.Country, c.Address1, c.City, c.Zip}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return ErrMissingAddress
		}
	}
	return nil
}
