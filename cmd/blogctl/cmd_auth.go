package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/2azusa/Go-Blog/internal/infrastructure/blogapi"
	"github.com/2azusa/Go-Blog/internal/infrastructure/session"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Log in, log out, and inspect the stored session",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store the session token",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account (requires email activation)",
	RunE:  runRegister,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored session's claims and expiry",
	RunE:  runAuthStatus,
}

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Redeem an account activation code",
	RunE:  runActivate,
}

var (
	loginUsername string
	loginPassword string

	registerUsername string
	registerPassword string
	registerEmail    string

	activateCode string
)

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(activateCmd)

	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")

	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Email address")

	activateCmd.Flags().StringVar(&activateCode, "code", "", "Activation code from the registration email")
	_ = activateCmd.MarkFlagRequired("code")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	username := loginUsername
	if username == "" {
		if username, err = promptLine("Username"); err != nil {
			return err
		}
	}
	password := loginPassword
	if password == "" {
		if password, err = promptLine("Password"); err != nil {
			return err
		}
	}

	result, err := a.api.Login(cmd.Context(), blogapi.ReqLogin{
		Username: username,
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", result.User.Username)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.api.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	msg, err := a.api.Register(cmd.Context(), blogapi.ReqRegister{
		Username: registerUsername,
		Password: registerPassword,
		Email:    registerEmail,
	})
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	token, ok := a.store.Token()
	if !ok {
		fmt.Println("Not logged in")
		return nil
	}

	claims, err := session.Inspect(token)
	if err != nil {
		return fmt.Errorf("stored token is unreadable: %w", err)
	}

	fmt.Printf("Logged in as: %s\n", claims.Username)
	if claims.ExpiresAt != nil {
		fmt.Printf("Token expires: %s\n", claims.ExpiresAt.Time.Format(time.RFC3339))
		if claims.Expired(time.Now()) {
			fmt.Println("Token has expired; run 'blogctl auth login' again")
		}
	}
	return nil
}

func runActivate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	msg, err := a.api.ActivateEmail(cmd.Context(), activateCode)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}
