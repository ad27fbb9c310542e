// Package jobs is the client for the external job-board search API.
package jobs

import (
	"net/http"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"go.uber.org/zap"
)

const (
	defaultAPIURL    = "https://api.jobboard.dev/v1"
	defaultUserAgent = "jobscout (https://github.com/jobscout/jobscout)"
	// Max value for search per page.
	perPage = "100"
)

type Client struct {
	token      string
	logger     *zap.Logger
	converter  *md.Converter
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger, token string) *Client {
	return &Client{
		token:  token,
		APIURL: defaultAPIURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger:    logger,
		converter: md.NewConverter("", true, nil),
		UserAgent: defaultUserAgent,
	}
}
