package fetchers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	tracker "github.com/malusev998/cryptocurrency-tracker"
)

// TickerFetcher downloads the full ticker list in a single GET request.
type TickerFetcher struct {
	URL    string
	Client *http.Client
	Logger logrus.FieldLogger
}

func (t TickerFetcher) Fetch(ctx context.Context) (string, error) {
	url := t.URL

	if url == "" {
		url = TickerURL
	}

	client := t.Client

	if client == nil {
		client = &http.Client{}
	}

	logger := t.Logger

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if ctx == nil {
		ctx = context.Background()
	}

	req, id, err := newRequest(ctx, url)

	if err != nil {
		return "", tracker.NewError(tracker.NetworkError, "unable to send GET request", err)
	}

	logger = logger.WithField("request_id", id)
	logger.WithField("url", url).Debug("fetching ticker")

	res, err := client.Do(req)

	if err != nil {
		return "", tracker.NewError(tracker.NetworkError, "unable to send GET request", err)
	}

	defer res.Body.Close()

	if err := handleHTTPStatusCodeError(res); err != nil {
		logger.WithField("status", res.StatusCode).Debug("ticker request failed")

		return "", tracker.NewError(
			tracker.NetworkError,
			"unable to send GET request",
			fmt.Errorf("%w: %s", err, res.Status),
		)
	}

	body, err := io.ReadAll(res.Body)

	if err != nil {
		return "", tracker.NewError(tracker.NetworkError, "unable to read API response", err)
	}

	if !utf8.Valid(body) {
		return "", tracker.NewError(tracker.NetworkError, "unable to read API response", ErrInvalidUTF8)
	}

	logger.WithFields(logrus.Fields{
		"status": res.StatusCode,
		"bytes":  len(body),
	}).Debug("ticker fetched")

	return string(body), nil
}
