package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"redseam/cmd/redseam/ui"
	"redseam/internal/logging"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the store interactively",
	Long:  "Open the full-screen storefront: product listing, detail pages and the cart in one terminal session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		defer logging.CloseAll()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Pick up logins and logouts done from another terminal while
		// the storefront is open.
		if err := a.sessions.Watch(ctx); err != nil {
			logging.Get(logging.CategorySession).Warn("session watcher unavailable: %v", err)
		}

		model := ui.New(ui.Deps{
			Client:     a.client,
			Sessions:   a.sessions,
			Cart:       a.cart,
			History:    a.history,
			BrowsePath: a.cfg.BrowsePath(),
		})

		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		_, err = program.Run()
		return err
	},
}
