package stats

import "surveysynth/internal/api"

// SurveyView is the per-survey merge of processing status, analysis result
// and rendered chart URLs, keyed by upload id.
type SurveyView struct {
	Survey    api.Survey
	Insight   *api.Insight
	ChartURLs []string
}

// JoinSurveyInsight left-joins insights onto surveys by upload id. Surveys
// are the driving set: a survey without an insight yields a nil Insight, and
// an insight without a matching survey is dropped.
func JoinSurveyInsight(surveys []api.Survey, insights []api.Insight) map[string]*SurveyView {
	views := make(map[string]*SurveyView, len(surveys))
	for _, survey := range surveys {
		views[survey.UploadID] = &SurveyView{Survey: survey}
	}

	for i := range insights {
		if view, ok := views[insights[i].UploadID]; ok {
			view.Insight = &insights[i]
		}
	}

	return views
}

// AttachCharts assigns chart URL sets to the views sharing their upload id.
// Chart sets for unknown upload ids are ignored.
func AttachCharts(views map[string]*SurveyView, charts map[string][]string) {
	for uploadID, urls := range charts {
		if view, ok := views[uploadID]; ok {
			view.ChartURLs = urls
		}
	}
}
