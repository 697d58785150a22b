package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently viewed products and past orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if a.history == nil {
			return fmt.Errorf("history store is unavailable")
		}

		viewed, err := a.history.RecentlyViewed(historyLimit)
		if err != nil {
			return err
		}
		orders, err := a.history.Orders(historyLimit)
		if err != nil {
			return err
		}

		if len(viewed) == 0 && len(orders) == 0 {
			fmt.Println("No history yet.")
			return nil
		}

		if len(viewed) > 0 {
			fmt.Println("Recently viewed:")
			for _, v := range viewed {
				fmt.Printf("  #%-5d %-38s %10.2f  %s\n",
					v.ProductID, truncate(v.Name, 38), v.Price, v.SeenAt.Local().Format("2006-01-02 15:04"))
			}
		}

		if len(orders) > 0 {
			if len(viewed) > 0 {
				fmt.Println()
			}
			fmt.Println("Orders:")
			for _, o := range orders {
				fmt.Printf("  %s  %d line(s)  subtotal %.2f + delivery %.2f = %.2f\n",
					o.CreatedAt.Local().Format("2006-01-02 15:04"), o.LineCount, o.Subtotal, o.Delivery, o.Total)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum entries per section")
}
