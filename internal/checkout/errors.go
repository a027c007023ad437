package checkout

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrNoShippingSelected  = errors.New("no shipping method selected")
	ErrUnknownPayment      = errors.New("unknown payment method")
	ErrMissingVenmoHandle  = errors.New("venmo username is required")
	ErrMissingBankHolder   = errors.New("bank account holder name is required")
	ErrMissingBankRef      = errors.New("bank transfer reference is required")
	ErrMissingSenderWallet = errors.New("sender wallet address is required")
	ErrInvalidTxHash       = errors.New("transaction hash is too short")
	ErrWalletNotConfirmed  = errors.New("wallet payment must be confirmed")
	ErrMissingAddress      = errors.New("required address fields are missing")
)
