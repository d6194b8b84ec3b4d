package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lookupEmail string

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Show the registered user count, or look up one account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if lookupEmail != "" {
			user, err := client.LookupUser(cmd.Context(), lookupEmail)
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\tuploads: %d\tregistered: %s\n",
				user.UserID, user.Email, user.UploadCount, user.CreatedAt)
			return nil
		}

		count, err := client.UserCount(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%d registered users\n", count)
		return nil
	},
}

func init() {
	usersCmd.Flags().StringVar(&lookupEmail, "email", "", "look up a single account by email")
	rootCmd.AddCommand(usersCmd)
}
