package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	tracker "github.com/malusev998/cryptocurrency-tracker"
	"github.com/malusev998/cryptocurrency-tracker/fetchers"
	"github.com/malusev998/cryptocurrency-tracker/services"
)

const (
	cryptocurrencyFlag = "cryptocurrency"
	formatFlag         = "format"
	separatorFlag      = "separator"
	debugFlag          = "debug"
)

type (
	Config struct {
		Ctx    context.Context
		Stdout io.Writer
		Stderr io.Writer
		// URL overrides the ticker endpoint. Empty means fetchers.TickerURL.
		URL string
	}
)

func rootCommand(config *Config, v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cryptocurrency-tracker",
		Short:         "Get cryptocurrency information from coinmarketcap.com",
		Version:       "v0.1.0",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// -c BTC ETH: values following a -c flag are more symbols.
			symbols := append(v.GetStringSlice(cryptocurrencyFlag), args...)

			return report(config, v, symbols)
		},
	}

	flags := rootCmd.Flags()
	flags.StringSliceP(cryptocurrencyFlag, "c", nil, "Enter the cryptocurrency(s) you are interested in")
	flags.StringP(formatFlag, "f", tracker.DefaultFormat, "Enter the format")
	flags.StringP(separatorFlag, "s", tracker.DefaultSeparator, "Enter the separator")
	flags.BoolP(debugFlag, "d", false, "Debug flag")

	_ = rootCmd.MarkFlagRequired(cryptocurrencyFlag)
	_ = v.BindPFlag(cryptocurrencyFlag, flags.Lookup(cryptocurrencyFlag))
	_ = v.BindPFlag(formatFlag, flags.Lookup(formatFlag))
	_ = v.BindPFlag(separatorFlag, flags.Lookup(separatorFlag))
	_ = v.BindPFlag(debugFlag, flags.Lookup(debugFlag))

	rootCmd.SetOut(config.Stdout)
	rootCmd.SetErr(config.Stderr)

	return rootCmd
}

func newLogger(w io.Writer, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.WarnLevel)

	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

func report(config *Config, v *viper.Viper, symbols []string) error {
	logger := newLogger(config.Stderr, v.GetBool(debugFlag))

	service := services.ReportService{
		Fetcher: fetchers.TickerFetcher{
			URL:    config.URL,
			Logger: logger,
		},
		Format:    v.GetString(formatFlag),
		Separator: v.GetString(separatorFlag),
		Logger:    logger,
	}

	out, err := service.Report(config.Ctx, symbols)

	if err != nil {
		return err
	}

	if _, err := io.WriteString(config.Stdout, out); err != nil {
		return tracker.NewError(tracker.OutputError, "unable to write output", err)
	}

	return nil
}

// Execute runs the command line and returns the process exit code.
func Execute(config *Config, args []string) int {
	if config.Ctx == nil {
		config.Ctx = context.Background()
	}

	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}

	if config.Stderr == nil {
		config.Stderr = os.Stderr
	}

	v := viper.New()
	rootCmd := rootCommand(config, v)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		var trackerErr *tracker.Error

		if !errors.As(err, &trackerErr) {
			err = tracker.NewError(tracker.ConfigurationError, "unable to get matches", err)
		}

		PrintError(config.Stderr, err, v.GetBool(debugFlag))

		return 1
	}

	return 0
}

// PrintError writes err and its causes, one per line.
func PrintError(w io.Writer, err error, backtrace bool) {
	causes := tracker.Causes(err)

	if len(causes) == 0 {
		return
	}

	fmt.Fprintf(w, "error: %s\n", causes[0])

	for _, cause := range causes[1:] {
		fmt.Fprintf(w, "caused by: %s\n", cause)
	}

	if !backtrace {
		return
	}

	if trace := tracker.Backtrace(err); trace != "" {
		fmt.Fprintf(w, "backtrace:%s\n", trace)
	}
}
