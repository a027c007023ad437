// Command ordersctl works the order collection from the command line, against
// the same store the server uses: dashboard stats, CSV export, backup and
// restore.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cr-records/internal/admin"
	"cr-records/internal/config"
	applogger "cr-records/internal/logger"
	"cr-records/internal/store"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: ordersctl <command> [flags]

Commands:
  stats              print dashboard statistics
  export [-o file]   export all orders as CSV (default stdout)
  backup [-o file]   write a backup envelope (default orders-backup-<date>.json)
  restore -f file    replace all orders with the backup file contents
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg := config.Load()
	logger := applogger.NewConsoleLogger()

	ctx := context.Background()

	var (
		backing *store.BunStore
		err     error
	)
	switch cfg.Store.Driver {
	case "postgres":
		backing, err = store.OpenPostgres(cfg.Store.PostgresDSN)
	default:
		backing, err = store.OpenSQLite(cfg.Store.SQLitePath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ordersctl: open store: %v\n", err)
		os.Exit(1)
	}
	defer backing.Close()

	if err := backing.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ordersctl: migrate store: %v\n", err)
		os.Exit(1)
	}

	data := store.NewCollections(backing, logger)
	service := admin.NewService(data, nil, logger, cfg.Admin)

	switch os.Args[1] {
	case "stats":
		runStats(ctx, service)
	case "export":
		runExport(ctx, service, os.Args[2:])
	case "backup":
		runBackup(ctx, service, os.Args[2:])
	case "restore":
		runRestore(ctx, service, os.Args[2:])
	default:
		usage()
	}
}

func runStats(ctx context.Context, service *admin.Service) {
	stats := service.Stats(ctx)
	fmt.Printf("Orders:  %d\n", stats.TotalOrders)
	fmt.Printf("Pending: %d\n", stats.Pending)
	fmt.Printf("Shipped: %d\n", stats.Shipped)
	fmt.Printf("Revenue: $%.2f\n", stats.Revenue)
}

func runExport(ctx context.Context, service *admin.Service, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "", "output file (default stdout)")
	fs.Parse(args)

	csv, err := service.ExportCSV(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ordersctl: export: %v\n", err)
		os.Exit(1)
	}
	if *out == "" {
		fmt.Print(csv)
		return
	}
	if err := os.WriteFile(*out, []byte(csv), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "ordersctl: write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Exported orders to %s\n", *out)
}

func runBackup(ctx context.Context, service *admin.Service, args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	out := fs.String("o", "", "output file")
	fs.Parse(args)

	raw, err := service.Backup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ordersctl: backup: %v\n", err)
		os.Exit(1)
	}
	name := *out
	if name == "" {
		name = service.BackupFilename()
	}
	if err := os.WriteFile(name, raw, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "ordersctl: write %s: %v\n", name, err)
		os.Exit(1)
	}
	fmt.Printf("Backup written to %s\n", name)
}

func runRestore(ctx context.Context, service *admin.Service, args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	file := fs.String("f", "", "backup file to restore")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	fs.Parse(args)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "ordersctl: restore requires -f <file>")
		os.Exit(2)
	}

	if !*yes {
		fmt.Print("Restore REPLACES all stored orders. Type 'yes' to continue: ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "yes" {
			fmt.Println("Aborted.")
			return
		}
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ordersctl: read %s: %v\n", *file, err)
		os.Exit(1)
	}
	count, err := service.Restore(ctx, raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ordersctl: restore: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Restored %d orders\n", count)
}
