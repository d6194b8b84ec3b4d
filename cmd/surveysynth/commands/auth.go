package commands

import (
	"errors"
	"fmt"

	"surveysynth/internal/api"

	"github.com/spf13/cobra"
)

var errNotSignedIn = errors.New("not signed in, run 'surveysynth login' first")

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Sign in and persist the session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password := args[0], args[1]

		result, err := client.Authenticate(cmd.Context(), api.ModeLogin, email, password)
		if err != nil {
			return err
		}
		if !result.Success {
			if result.Message != "" {
				return errors.New(result.Message)
			}
			return errors.New("login failed")
		}

		if err := store.Login(result.UserID, email); err != nil {
			return err
		}

		fmt.Printf("%s (user %s)\n", result.Message, result.UserID)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <email> <password>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.Authenticate(cmd.Context(), api.ModeRegister, args[0], args[1])
		if err != nil {
			return err
		}
		if !result.Success {
			if result.Message != "" {
				return errors.New(result.Message)
			}
			return errors.New("registration failed")
		}

		fmt.Println(result.Message)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store.Restore()
		if err := store.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
}
