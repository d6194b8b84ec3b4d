package poller

import (
	"context"
	"sync"

	"surveysynth/internal/api"
	"surveysynth/internal/stats"

	"golang.org/x/sync/errgroup"
)

// FetchSnapshot performs one full fetch-and-aggregate round: surveys and
// insights concurrently, then chart URLs per known insight, then the derived
// statistics and per-survey views. Chart fetches are insight-keyed, run
// concurrently across upload ids, and all complete (or degrade to empty)
// before the snapshot is returned.
func FetchSnapshot(ctx context.Context, client api.Client, userID string) (Snapshot, error) {
	var (
		surveys  []api.Survey
		insights []api.Insight
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		surveys, err = client.ListSurveys(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		insights, err = client.ListInsights(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	charts := make(map[string][]string, len(insights))
	var mu sync.Mutex
	var cg errgroup.Group
	for _, insight := range insights {
		uploadID := insight.UploadID
		cg.Go(func() error {
			urls := client.ListChartURLs(ctx, userID, uploadID)
			mu.Lock()
			charts[uploadID] = urls
			mu.Unlock()
			return nil
		})
	}
	// Chart fetches cannot fail by contract; Wait only joins them.
	_ = cg.Wait()

	views := stats.JoinSurveyInsight(surveys, insights)
	stats.AttachCharts(views, charts)

	return Snapshot{
		Surveys:  surveys,
		Insights: insights,
		Charts:   charts,
		Stats:    stats.ComputeStats(surveys, insights),
		Views:    views,
	}, nil
}
