package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"redseam/internal/api"
	"redseam/internal/validate"
)

var (
	loginEmail    string
	loginPassword string

	regUsername string
	regEmail    string
	regPassword string
	regConfirm  string
	regAvatar   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email (or username) and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if errs := validate.SignIn(loginEmail, loginPassword); !errs.OK() {
			return fieldErrors(errs)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		auth, err := a.client.Login(context.Background(), loginEmail, loginPassword)
		if err != nil {
			logger.Warn("Login failed", zap.Error(err))
			return err
		}
		if err := a.sessions.Establish(auth); err != nil {
			return fmt.Errorf("logged in but failed to persist session: %w", err)
		}

		logger.Info("Logged in", zap.String("user", auth.User.Username))
		fmt.Printf("Logged in as %s <%s>\n", auth.User.Username, auth.User.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account (optionally with an avatar image)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if errs := validate.SignUp(regUsername, regEmail, regPassword, regConfirm); !errs.OK() {
			return fieldErrors(errs)
		}
		if regAvatar != "" {
			if err := validate.Avatar(regAvatar); err != nil {
				return err
			}
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		auth, err := a.client.Register(context.Background(), api.RegisterParams{
			Username:             regUsername,
			Email:                regEmail,
			Password:             regPassword,
			PasswordConfirmation: regConfirm,
			AvatarPath:           regAvatar,
		})
		if err != nil {
			logger.Warn("Registration failed", zap.Error(err))
			var verr *api.ValidationError
			if errors.As(err, &verr) {
				return validationErrors(verr)
			}
			return err
		}
		if err := a.sessions.Establish(auth); err != nil {
			return fmt.Errorf("registered but failed to persist session: %w", err)
		}

		logger.Info("Account registered", zap.String("user", auth.User.Username))
		fmt.Printf("Welcome, %s! You are now logged in.\n", auth.User.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.sessions.Clear(); err != nil {
			return err
		}
		logger.Info("Logged out")
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		user := a.sessions.Current()
		if user == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s <%s> (id %d)\n", user.Username, user.Email, user.ID)
		return nil
	},
}

// fieldErrors renders client-side validation failures, one per line, in a
// stable order.
func fieldErrors(errs validate.FieldErrors) error {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msg := ""
	for _, f := range fields {
		msg += fmt.Sprintf("\n  %s: %s", f, errs[f])
	}
	return fmt.Errorf("validation failed:%s", msg)
}

// validationErrors renders a server 422 with per-field messages when present.
func validationErrors(verr *api.ValidationError) error {
	if len(verr.Errors) == 0 {
		return verr
	}
	fields := make([]string, 0, len(verr.Errors))
	for f := range verr.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msg := ""
	for _, f := range fields {
		for _, m := range verr.Errors[f] {
			msg += fmt.Sprintf("\n  %s: %s", f, m)
		}
	}
	return fmt.Errorf("the server rejected the form:%s", msg)
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email or username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVarP(&regUsername, "username", "u", "", "username")
	registerCmd.Flags().StringVarP(&regEmail, "email", "e", "", "email")
	registerCmd.Flags().StringVarP(&regPassword, "password", "p", "", "password")
	registerCmd.Flags().StringVar(&regConfirm, "confirm", "", "password confirmation")
	registerCmd.Flags().StringVar(&regAvatar, "avatar", "", "path to an avatar image (jpg/png/gif/webp, max 5MB)")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("confirm")
}
