package commands

import (
	"surveysynth/internal/api"
	"surveysynth/internal/config"
	"surveysynth/internal/logging"
	"surveysynth/internal/session"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	client api.Client
	store  *session.Store
)

var rootCmd = &cobra.Command{
	Use:   "surveysynth",
	Short: "SurveySynth is a client for the SurveySynth survey-analysis backend",
	Long: `A command-line client for the SurveySynth backend: upload survey files,
watch the asynchronous AI analysis until it completes, and view the derived
insights, dashboard statistics and chart URLs.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		if cfg.API.BaseURL == "" {
			log.Fatal().Msg("SURVEYSYNTH_API_URL is not set")
		}

		client = api.NewClient(cfg.API)
		store = session.NewStore(cfg.DataPath)

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("SurveySynth client starting")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// requireSession restores the persisted identity or fails the command.
func requireSession() (*session.Session, error) {
	if sess := store.Restore(); sess != nil {
		return sess, nil
	}
	return nil, errNotSignedIn
}
