package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"cr-records/internal/models"
	"cr-records/internal/utils"
)

// csvHeader is the fixed 20-column export layout.
var csvHeader = []string{
	"Order ID", "Date", "Customer", "Email", "Address", "City", "State", "ZIP",
	"Country", "Items", "Quantity", "Subtotal", "Shipping", "Tax", "Total",
	"Status", "Payment Status", "Tracking", "Carrier", "Notes",
}

// ExportCSV renders the whole order collection as CSV, one row per order.
// Every cell is wrapped in double quotes; embedded quotes are doubled.
func (s *Service) ExportCSV(ctx context.Context) (string, error) {
	orders := s.Data.LoadOrders(ctx)
	if len(orders) == 0 {
		return "", ErrNoOrders
	}

	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	b.WriteString("\n")

	for _, order := range orders {
		address := order.Customer.Address1
		if order.Customer.Address2 != "" {
			address += " " + order.Customer.Address2
		}

		row := []string{
			order.ID,
			utils.DateStamp(order.CreatedAt),
			order.Customer.FullName,
			order.Customer.Email,
			address,
			order.Customer.City,
			order.Customer.State,
			order.Customer.Zip,
			order.Customer.Country,
			itemsSummary(order.Items),
			strconv.Itoa(order.ItemCount()),
			fmt.Sprintf("%.2f", order.Subtotal),
			fmt.Sprintf("%.2f", order.Shipping.Cost),
			fmt.Sprintf("%.2f", order.Tax),
			fmt.Sprintf("%.2f", order.Total),
			string(order.Status),
			order.PaymentStatus,
			order.TrackingNumber,
			order.Carrier,
			order.Notes,
		}
		for i, cell := range row {
			row[i] = csvQuote(cell)
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func csvQuote(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

func itemsSummary(items []models.CartItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		summary := item.Name
		if item.Size != "" {
			summary += " (" + item.Size + ")"
		}
		parts[i] = summary
	}
	return strings.Join(parts, "; ")
}

// ExportFilename embeds the current date, orders-export-2026-08-31.csv style.
func (s *Service) ExportFilename() string {
	return fmt.Sprintf("orders-export-%s.csv", utils.DateStamp(s.now()))
}

// Backup wraps the order collection in the download envelope.
func (s *Service) Backup(ctx context.Context) ([]byte, error) {
	backup := models.OrderBackup{
		Version:    models.BackupVersion,
		ExportDate: s.now().UTC(),
		Orders:     s.Data.LoadOrders(ctx),
	}
	raw, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return raw, nil
}

func (s *Service) BackupFilename() string {
	return fmt.Sprintf("orders-backup-%s.json", utils.DateStamp(s.now()))
}

// Restore validates a backup file and replaces (never merges) the whole order
// collection with its contents. Invalid shape mutates nothing. The envelope's
// version field is recorded on export but not checked here.
func (s *Service) Restore(ctx context.Context, data []byte) (int, error) {
	var envelope struct {
		Orders *[]models.Order `json:"orders"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return 0, ErrInvalidBackup
	}
	if envelope.Orders == nil {
		return 0, ErrInvalidBackup
	}

	orders := *envelope.Orders
	if err := s.Data.SaveOrders(ctx, orders); err != nil {
		return 0, fmt.Errorf("save restored orders: %w", err)
	}
	s.Logger.Info("ADMIN", fmt.Sprintf("Restored %d orders from backup", len(orders)))
	return len(orders), nil
}
