package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"surveysynth/internal/poller"
	"surveysynth/internal/stats"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Fetch and display the current survey dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		snapshot, err := poller.FetchSnapshot(cmd.Context(), client, sess.UserID)
		if err != nil {
			return err
		}

		printSnapshot(snapshot)
		return nil
	},
}

func printSnapshot(snapshot poller.Snapshot) {
	s := snapshot.Stats
	fmt.Printf("Surveys: %d   Responses: %d   Completed analyses: %d   Avg satisfaction: %.1f/5.0\n\n",
		s.TotalSurveys, s.TotalResponses, s.CompletedAnalyses, s.AverageSatisfaction)

	views := make([]*stats.SurveyView, 0, len(snapshot.Views))
	for _, view := range snapshot.Views {
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].Survey.Uploaded.After(views[j].Survey.Uploaded)
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UPLOAD\tSTATUS\tSCORE\tSENTIMENT\tRESPONSES\tCHARTS")
	for _, view := range views {
		score := "N/A"
		sentiment := stats.SentimentUnknown
		responses := 0
		if view.Insight != nil {
			if view.Insight.AvgSatisfaction != nil {
				score = fmt.Sprintf("%.1f", *view.Insight.AvgSatisfaction)
			}
			sentiment = stats.ClassifySentiment(view.Insight.OverallSentiment)
			responses = view.Insight.ResponseCount
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			view.Survey.UploadID, view.Survey.Status, score, sentiment, responses, len(view.ChartURLs))
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
