package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"redseam/internal/api"
	"redseam/internal/cart"
)

var (
	addColor    string
	addSize     string
	addQuantity int

	coName    string
	coSurname string
	coEmail   string
	coZip     string
	coAddress string
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents and totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.cart.Fetch(context.Background()); err != nil {
			return fmt.Errorf("%s", cart.UserMessage(err))
		}
		printCart(a.cart)
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add [product-id]",
	Short: "Add a product to the cart",
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

		if err := a.cart.Add(context.Background(), id, addColor, addSize, addQuantity); err != nil {
			logger.Warn("Cart add failed", zap.Int("product", id), zap.Error(err))
			return fmt.Errorf("%s", cart.UserMessage(err))
		}
		logger.Info("Added to cart", zap.Int("product", id), zap.Int("quantity", addQuantity))
		printCart(a.cart)
		return nil
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update [product-id] [quantity]",
	Short: "Change a line's quantity (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.cart.UpdateQuantity(context.Background(), id, qty); err != nil {
			logger.Warn("Cart update failed", zap.Int("product", id), zap.Error(err))
			return fmt.Errorf("%s", cart.UserMessage(err))
		}
		logger.Info("Cart line updated", zap.Int("product", id), zap.Int("quantity", qty))
		printCart(a.cart)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove [product-id]",
	Short: "Remove a line from the cart",
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

		if err := a.cart.Remove(context.Background(), id); err != nil {
			logger.Warn("Cart remove failed", zap.Int("product", id), zap.Error(err))
			return fmt.Errorf("%s", cart.UserMessage(err))
		}
		logger.Info("Removed from cart", zap.Int("product", id))
		printCart(a.cart)
		return nil
	},
}

var cartCheckoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Finalize the order (optional shipping details)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.cart.Fetch(context.Background()); err != nil {
			return fmt.Errorf("%s", cart.UserMessage(err))
		}
		if a.cart.UniqueCount() == 0 {
			return fmt.Errorf("the cart is empty")
		}

		var params *api.CheckoutParams
		if coName != "" || coSurname != "" || coEmail != "" || coZip != "" || coAddress != "" {
			params = &api.CheckoutParams{
				Name:    coName,
				Surname: coSurname,
				Email:   coEmail,
				ZipCode: coZip,
				Address: coAddress,
			}
		}

		lines, total := a.cart.UniqueCount(), a.cart.Total()
		msg, err := a.cart.Checkout(context.Background(), params)
		if err != nil {
			logger.Warn("Checkout failed", zap.Error(err))
			return fmt.Errorf("%s", cart.UserMessage(err))
		}
		logger.Info("Order placed", zap.Int("lines", lines), zap.Float64("total", total))
		if msg == "" {
			msg = "Order placed."
		}
		fmt.Println(msg)
		return nil
	},
}

func printCart(c *cart.Manager) {
	lines := c.Lines()
	if len(lines) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}

	fmt.Printf("%-6s %-30s %-12s %-6s %5s %12s\n", "ID", "NAME", "COLOR", "SIZE", "QTY", "TOTAL")
	for _, line := range lines {
		fmt.Printf("%-6d %-30s %-12s %-6s %5d %12.2f\n",
			line.ID, truncate(line.Name, 30), line.Color, line.Size, line.Quantity, line.TotalPrice)
	}
	fmt.Printf("\nItems subtotal: %10.2f\n", c.Subtotal())
	fmt.Printf("Delivery:       %10.2f\n", c.Delivery())
	fmt.Printf("Total:          %10.2f\n", c.Total())
}

func init() {
	cartAddCmd.Flags().StringVar(&addColor, "color", "", "color (defaults to the product's first color)")
	cartAddCmd.Flags().StringVar(&addSize, "size", "", "size (defaults to the product's first size)")
	cartAddCmd.Flags().IntVar(&addQuantity, "quantity", 1, "quantity to add")

	cartCheckoutCmd.Flags().StringVar(&coName, "name", "", "first name")
	cartCheckoutCmd.Flags().StringVar(&coSurname, "surname", "", "surname")
	cartCheckoutCmd.Flags().StringVar(&coEmail, "email", "", "contact email")
	cartCheckoutCmd.Flags().StringVar(&coZip, "zip", "", "zip code")
	cartCheckoutCmd.Flags().StringVar(&coAddress, "address", "", "shipping address")

	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartUpdateCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartCheckoutCmd)
}
