package models

import (
	"fmt"
)

// PaymentMethod is the closed set of ways a buyer can settle an order.
type PaymentMethod string

const (
	PaymentVenmo   PaymentMethod = "venmo"
	PaymentBank    PaymentMethod = "bank_account"
	PaymentAtomOne PaymentMethod = "atom_one"
)

// Label returns the display name stored on orders.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentVenmo:
		return "Venmo"
	case PaymentBank:
		return "Bank Account"
	case PaymentAtomOne:
		return "Atom one"
	}
	return string(m)
}

// PendingStatus returns the payment status string a fresh order starts with.
func (m PaymentMethod) PendingStatus() string {
	switch m {
	case PaymentVenmo:
		return "Awaiting Venmo Confirmation"
	case PaymentBank:
		return "Awaiting Bank Transfer Confirmation"
	case PaymentAtomOne:
		return "Awaiting Atom one Confirmation"
	}
	return "Pending Payment Confirmation"
}

// Valid reports whether the method is one of the supported ones.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentVenmo, PaymentBank, PaymentAtomOne:
		return true
	}
	return false
}

// VenmoPayment records a peer-payment claim.
type VenmoPayment struct {
	Provider        string `json:"provider"`
	RecipientHandle string `json:"recipientHandle"`
	RecipientURL    string `json:"recipientUrl"`
	SenderHandle    string `json:"senderHandle"`
	Reference       string `json:"reference,omitempty"`
}

// BankPayment records a bank transfer claim.
type BankPayment struct {
	Provider      string `json:"provider"`
	AccountHolder string `json:"accountHolder"`
	Reference     string `json:"reference"`
}

// WalletPayment records an on-chain transfer claim.
type WalletPayment struct {
	Network         string `json:"network"`
	RecipientWallet string `json:"recipientWallet"`
	SenderWallet    string `json:"senderWallet"`
	TxHash          string `json:"txHash"`
}

// PaymentDetails is a tagged variant: Method selects which of the three
// sub-records is populated. Exactly one case is set on a well-formed order.
type PaymentDetails struct {
	Method PaymentMethod  `json:"method"`
	Venmo  *VenmoPayment  `json:"venmo,omitempty"`
	Bank   *BankPayment   `json:"bank,omitempty"`
	Wallet *WalletPayment `json:"wallet,omitempty"`
}

// Validate checks that the populated case matches the method tag.
func (p PaymentDetails) Validate() error {
	switch p.Method {
	case PaymentVenmo:
		if p.Venmo == nil {
			return fmt.Errorf("payment method %s has no venmo record", p.Method)
		}
	case PaymentBank:
		if p.Bank == nil {
			return fmt.Errorf("payment method %s has no bank record", p.Method)
		}
	case PaymentAtomOne:
		if p.Wallet == nil {
			return fmt.Errorf("payment method %s has no wallet record", p.Method)
		}
	default:
		return fmt.Errorf("unknown payment method %q", p.Method)
	}
	return nil
}

// InstructionLines renders the per-method confirmation lines shown to the
// buyer after checkout.
func (p PaymentDetails) InstructionLines() []string {
	switch p.Method {
	case PaymentVenmo:
		if p.Venmo == nil {
			return nil
		}
		second := "Pay to: " + p.Venmo.RecipientHandle
		if p.Venmo.Reference != "" {
			second += " | Reference: " + p.Venmo.Reference
		}
		return []string{"Venmo username: " + p.Venmo.SenderHandle, second}
	case PaymentBank:
		if p.Bank == nil {
			return nil
		}
		return []string{
			"Account holder: " + p.Bank.AccountHolder,
			"Transfer reference: " + p.Bank.Reference,
		}
	case PaymentAtomOne:
		if p.Wallet == nil {
			return nil
		}
		return []string{
			"Sender wallet: " + p.Wallet.SenderWallet,
			"Tx hash: " + p.Wallet.TxHash,
		}
	}
	return nil
}
