package fetchers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

const (
	TickerURL       = "https://api.coinmarketcap.com/v1/ticker"
	RequestIDHeader = "X-Request-Id"
)

var (
	ErrClient      = errors.New("client error")
	ErrServer      = errors.New("server error")
	ErrUnknown     = errors.New("unknown error")
	ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")
)

func newRequest(ctx context.Context, url string) (*http.Request, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, "", err
	}

	id := uuid.New().String()

	req.Header.Add("Accept", "application/json")
	req.Header.Add(RequestIDHeader, id)

	return req, id, nil
}

func handleHTTPStatusCodeError(res *http.Response) error {
	switch {
	case res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices:
		return nil
	case res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError:
		return ErrClient
	case res.StatusCode >= http.StatusInternalServerError:
		return ErrServer
	}

	return ErrUnknown
}
