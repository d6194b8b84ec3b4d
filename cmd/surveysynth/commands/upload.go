package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a survey file for analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		message, err := client.Upload(cmd.Context(), sess.Email, filepath.Base(args[0]), content)
		if err != nil {
			return err
		}

		fmt.Println(message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
