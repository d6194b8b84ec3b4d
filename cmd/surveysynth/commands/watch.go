package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"surveysynth/internal/poller"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <upload-id>",
	Short: "Poll a survey until its analysis completes",
	Long: `Selects a survey and re-fetches the dashboard on the configured interval
until the backend reports it analyzed. Each completed cycle reprints the
dashboard; Ctrl-C cancels the watch.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}
		uploadID := args[0]

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		done := make(chan struct{})
		controller := poller.New(client, sess.UserID, cfg.PollInterval, func(snapshot poller.Snapshot) {
			printSnapshot(snapshot)
			if snapshot.Target != nil && snapshot.Target.Status.Terminal() {
				close(done)
			}
		})
		store.OnLogout(controller.Close)

		controller.Select(ctx, uploadID)
		defer controller.Close()

		select {
		case <-done:
			fmt.Printf("Survey %s analyzed.\n", uploadID)
			return nil
		case <-ctx.Done():
			fmt.Println("Watch cancelled.")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
