package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	tracker "github.com/malusev998/cryptocurrency-tracker"
	"github.com/malusev998/cryptocurrency-tracker/format"
	"github.com/malusev998/cryptocurrency-tracker/records"
)

// ReportService fetches the ticker once and renders the requested symbols.
// The report is only returned when every symbol was rendered.
type ReportService struct {
	Fetcher   tracker.Fetcher
	Format    string
	Separator string
	Logger    logrus.FieldLogger
}

func (r ReportService) Report(ctx context.Context, symbols []string) (string, error) {
	if len(symbols) == 0 {
		return "", tracker.NewError(tracker.ConfigurationError, "unable to get cryptocurrency vector", nil)
	}

	logger := r.Logger

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	template, err := format.Parse(r.Format)

	if err != nil {
		return "", err
	}

	body, err := r.Fetcher.Fetch(ctx)

	if err != nil {
		return "", err
	}

	index, err := records.Index(body)

	if err != nil {
		return "", err
	}

	logger.WithField("records", len(index)).Debug("ticker indexed")

	var builder strings.Builder

	for i, symbol := range symbols {
		record, err := index.Get(symbol)

		if err != nil {
			return "", err
		}

		logger.WithField("symbol", symbol).Debug("formatting record")

		line, err := template.Execute(record)

		if err != nil {
			return "", err
		}

		builder.WriteString(line)

		if i < len(symbols)-1 {
			builder.WriteString(r.Separator)
		}
	}

	builder.WriteByte('\n')

	return builder.String(), nil
}
