package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diasKarataev/todo-client/domain"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.accounts.Login(cmd.Context(), email, password)
			if err != nil {
				// Bad credentials are the user's to fix; anything else is an
				// infrastructure problem and needs different wording.
				if domain.IsDomainError(err, domain.ErrCodeInvalidCredentials) {
					return fmt.Errorf("login failed: wrong email or password")
				}
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Printf("Logged in as %s.\n", a.session.Username)
			if !a.session.Activated {
				fmt.Println("Account is not activated yet: creating tasks is disabled until you follow the activation link.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.accounts.Register(cmd.Context(), username, email, password); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			fmt.Println("Account created. Check your email for the activation link, then log in.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "desired username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.accounts.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account, refreshed from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.accounts.Refresh(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("%s <%s>\n", user.Username, user.Email)
			fmt.Printf("role: %s\n", user.Role)
			if user.Activated {
				fmt.Println("activation: activated")
			} else {
				fmt.Println("activation: pending (task creation disabled)")
			}
			return nil
		},
	}
}

func newResendActivationCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resend-activation",
		Short: "Request a fresh activation email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.accounts.ResendActivation(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Activation link resent.")
			return nil
		},
	}
}
