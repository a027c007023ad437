package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidBackup      = errors.New("invalid backup file format")
	ErrNoOrders           = errors.New("no orders to export")
)
