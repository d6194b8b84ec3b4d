package commands

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var openCharts bool

var chartsCmd = &cobra.Command{
	Use:   "charts <upload-id>",
	Short: "List chart image URLs for an analyzed survey",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		urls := client.ListChartURLs(cmd.Context(), sess.UserID, args[0])
		if len(urls) == 0 {
			fmt.Println("No charts available")
			return nil
		}

		for _, url := range urls {
			fmt.Println(url)
			if openCharts {
				if err := browser.OpenURL(url); err != nil {
					log.Warn().Err(err).Str("url", url).Msg("Failed to open chart in browser")
				}
			}
		}
		return nil
	},
}

func init() {
	chartsCmd.Flags().BoolVar(&openCharts, "open", false, "open each chart in the default browser")
	rootCmd.AddCommand(chartsCmd)
}
