package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"redseam/internal/catalog"
	"redseam/internal/logging"
)

var (
	listPage      int
	listSort      string
	listPriceFrom float64
	listPriceTo   float64
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a catalog page with optional filter and sort",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		f := catalog.LoadQuery(a.cfg.BrowsePath())
		if cmd.Flags().Changed("sort") {
			f.SetSort(listSort)
		}
		if cmd.Flags().Changed("price-from") || cmd.Flags().Changed("price-to") {
			f.SetPrice(listPriceFrom, listPriceTo)
		}
		// Page applies after filter/sort so their page-1 reset holds
		// unless the page was asked for explicitly.
		if cmd.Flags().Changed("page") {
			f.SetPage(listPage)
		}

		resp, err := a.client.ListProducts(context.Background(), f.ListParams())
		if err != nil {
			logger.Warn("Catalog fetch failed", zap.Error(err))
			return err
		}
		logger.Debug("Catalog page fetched",
			zap.Int("page", resp.Meta.CurrentPage),
			zap.Int("of", resp.Meta.LastPage),
			zap.Int("total", resp.Meta.Total))

		// Persist the mirror only after the server accepted the state.
		if err := catalog.SaveQuery(a.cfg.BrowsePath(), f); err != nil {
			logging.Get(logging.CategoryUI).Warn("failed to persist browse state: %v", err)
		}

		if len(resp.Data) == 0 {
			fmt.Println("No products match the current filter.")
			return nil
		}

		fmt.Printf("%-6s %-38s %10s  %s\n", "ID", "NAME", "PRICE", "COLORS")
		for _, p := range resp.Data {
			fmt.Printf("%-6d %-38s %10.2f  %s\n",
				p.ID, truncate(p.Name, 38), p.Price, strings.Join(p.AvailableColors, ", "))
		}

		fmt.Printf("\nShowing %d-%d of %d  |  %s\n",
			resp.Meta.From, resp.Meta.To, resp.Meta.Total,
			renderPager(resp.Meta.CurrentPage, resp.Meta.LastPage))
		return nil
	},
}

var productsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a product's detail, stock, colors and sizes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		p, err := a.client.GetProduct(context.Background(), id)
		if err != nil {
			logger.Warn("Product fetch failed", zap.Int("id", id), zap.Error(err))
			return err
		}
		logger.Debug("Product viewed", zap.Int("id", id), zap.String("name", p.Name))

		if a.history != nil {
			if err := a.history.RecordView(p); err != nil {
				logging.Get(logging.CategoryStore).Warn("failed to record view: %v", err)
			}
		}

		fmt.Printf("%s (#%d)\n", p.Name, p.ID)
		fmt.Printf("Brand:    %s\n", p.Brand.Name)
		fmt.Printf("Price:    %.2f\n", p.Price)
		fmt.Printf("In stock: %d\n", p.Quantity)
		if len(p.AvailableColors) > 0 {
			fmt.Printf("Colors:   %s\n", strings.Join(p.AvailableColors, ", "))
		}
		if len(p.AvailableSizes) > 0 {
			fmt.Printf("Sizes:    %s\n", strings.Join(p.AvailableSizes, ", "))
		}
		if p.Description != "" {
			fmt.Printf("\n%s\n", p.Description)
		}
		return nil
	},
}

// renderPager draws the visible-page row, e.g. "1 2 [3] 4 ... 10".
func renderPager(current, total int) string {
	items := catalog.VisiblePages(current, total, catalog.DefaultMaxVisible)
	parts := make([]string, 0, len(items))
	for _, item := range items {
		switch {
		case !item.IsPage():
			parts = append(parts, "...")
		case int(item) == current:
			parts = append(parts, fmt.Sprintf("[%d]", item))
		default:
			parts = append(parts, strconv.Itoa(int(item)))
		}
	}
	return "page " + strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	productsListCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	productsListCmd.Flags().StringVar(&listSort, "sort", "", "sort: newest, price-asc, price-desc")
	productsListCmd.Flags().Float64Var(&listPriceFrom, "price-from", 0, "minimum price")
	productsListCmd.Flags().Float64Var(&listPriceTo, "price-to", 0, "maximum price")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsShowCmd)
}
