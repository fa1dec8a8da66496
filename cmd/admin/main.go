package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"storefront/internal/api"
	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/session"
	"storefront/internal/tokenstore"
)

func main() {
	var (
		op          string
		id          string
		name        string
		description string
		price       string
		stock       int
		image       string
	)
	flag.StringVar(&op, "op", "list", "Operation: list, create, update or delete")
	flag.StringVar(&id, "id", "", "Product ID (update/delete)")
	flag.StringVar(&name, "name", "", "Product name")
	flag.StringVar(&description, "desc", "", "Product description")
	flag.StringVar(&price, "price", "", "Product price, e.g. 19.99")
	flag.IntVar(&stock, "stock", 0, "Available stock")
	flag.StringVar(&image, "image", "", "Product image URL")
	flag.Parse()

	logger := log.New(os.Stderr, "[admin] ", log.LstdFlags|log.LUTC)
	config.LoadDotenv(logger)
	cfg := config.FromEnv()

	store := tokenstore.NewFile(cfg.TokenPath)
	sessions := session.New(store, logger)
	backend := api.New(cfg.APIBaseURL, cfg.RequestTimeout, sessions, logger)
	sessions.SetBackend(backend)

	ctx := context.Background()
	if err := sessions.Restore(ctx); err != nil {
		logger.Fatalf("restore session: %v", err)
	}
	user, ok := sessions.Current()
	if !ok {
		logger.Fatalf("no session; log in through the storefront first")
	}
	if !user.IsAdmin() {
		logger.Fatalf("user %s is not an admin", user.Username)
	}

	switch op {
	case "list":
		products, err := backend.ListProducts(ctx)
		if err != nil {
			logger.Fatalf("list products: %v", err)
		}
		printProducts(products)
	case "create":
		in, err := productInput(name, description, price, stock, image)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		product, err := backend.CreateProduct(ctx, in)
		if err != nil {
			logger.Fatalf("create product: %v", err)
		}
		printProducts([]domain.Product{*product})
	case "update":
		if id == "" {
			logger.Fatalf("-id is required for update")
		}
		in, err := productInput(name, description, price, stock, image)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		product, err := backend.UpdateProduct(ctx, id, in)
		if err != nil {
			logger.Fatalf("update product: %v", err)
		}
		printProducts([]domain.Product{*product})
	case "delete":
		if id == "" {
			logger.Fatalf("-id is required for delete")
		}
		if err := backend.DeleteProduct(ctx, id); err != nil {
			logger.Fatalf("delete product: %v", err)
		}
		logger.Printf("deleted %s", id)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func productInput(name, description, price string, stock int, image string) (domain.ProductInput, error) {
	if name == "" {
		return domain.ProductInput{}, fmt.Errorf("-name is required")
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return domain.ProductInput{}, fmt.Errorf("parse -price %q: %w", price, err)
	}
	if parsed.IsNegative() {
		return domain.ProductInput{}, fmt.Errorf("-price must not be negative")
	}
	if stock < 0 {
		return domain.ProductInput{}, fmt.Errorf("-stock must not be negative")
	}
	return domain.ProductInput{
		Name:        name,
		Description: description,
		Price:       parsed,
		Stock:       stock,
		Image:       image,
	}, nil
}

func printProducts(products []domain.Product) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
	}
	w.Flush()
}
