package cli

import (
	"github.com/spf13/cobra"

	"weatherlog/apis/metno"
	"weatherlog/config"
	"weatherlog/console"
	"weatherlog/journal"
	"weatherlog/logger"
	"weatherlog/manager"
	"weatherlog/report"
)

func New(cfg *config.Config) (*cobra.Command, error) {
	var debug bool

	cmd := &cobra.Command{
		Use:           "weatherlog",
		Args:          cobra.NoArgs,
		Short:         "Compare today's weather measurements against a reference service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: "Compare today's weather measurements against a reference service.\n\n" +
			"Prompts and reports are written to stdout; diagnostics such as failed\n" +
			"reference fetches are logged to stderr.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				cfg.Logging.Level = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, closer, err := logger.New(logger.Config{
				Level:  cfg.Logging.Level,
				File:   cfg.Logging.File,
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer closer.Close()

			fetcher := metno.New(metno.Config{
				URL:       cfg.Reference.URL,
				UserAgent: cfg.Reference.UserAgent,
				Timeout:   cfg.HTTP.Timeout,
			})

			weatherManager := manager.New(fetcher, journal.New(), report.New(cfg.Reference.Name), manager.Options{
				LogPath:      cfg.Log.Path,
				WeekSamples:  cfg.Samples.Week,
				MonthSamples: cfg.Samples.Month,
			})
			weatherManager.SetLogger(log)

			log.Debug("starting run", "url", cfg.Reference.URL, "week", cfg.Samples.Week, "month", cfg.Samples.Month)

			return weatherManager.Run(cmd.Context(), console.New(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Reference.URL, "url", cfg.Reference.URL, "reference weather service URL")
	flags.StringVar(&cfg.Log.Path, "log-path", cfg.Log.Path, "file the weather log is written to")
	flags.IntVar(&cfg.Samples.Week, "week", cfg.Samples.Week, "number of reference samples in the week report")
	flags.IntVar(&cfg.Samples.Month, "month", cfg.Samples.Month, "number of reference samples in the month report")
	flags.StringVar(&cfg.Logging.File, "log-file", cfg.Logging.File, "also write diagnostics to this rotating file")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")

	return cmd, nil
}
