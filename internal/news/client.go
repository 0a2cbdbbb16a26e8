package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	commonerrors "postboard/internal/common/errors"
	"postboard/internal/common/logger"
	"postboard/internal/observability/metrics"
)

// Client fetches top headlines from the news provider. No caching and no
// retries: a slow or failing upstream degrades the news page, nothing
// else.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	country    string
	log        *logger.Logger
}

func NewClient(baseURL string, apiKey string, country string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		country:    country,
		log:        log,
	}
}

func (c *Client) TopHeadlines(ctx context.Context) (Headlines, error) {
	params := url.Values{}
	params.Add("country", c.country)
	params.Add("apiKey", c.apiKey)
	endpoint := fmt.Sprintf("%s/top-headlines?%s", c.baseURL, params.Encode())

	start := time.Now()
	metrics.NewsFetchesTotal.Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		metrics.NewsFetchFailures.Inc()
		return Headlines{}, commonerrors.ErrNewsUnavailable.WithCause(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.NewsFetchFailures.Inc()
		c.log.Warnf("news fetch failed: %v", err)
		return Headlines{}, commonerrors.ErrNewsUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.NewsFetchFailures.Inc()
		c.log.Warnf("news fetch failed: upstream returned status %d", resp.StatusCode)
		return Headlines{}, commonerrors.ErrNewsUnavailable.WithCause(
			fmt.Errorf("upstream returned status %d", resp.StatusCode),
		)
	}

	var headlines Headlines
	if err := json.NewDecoder(resp.Body).Decode(&headlines); err != nil {
		metrics.NewsFetchFailures.Inc()
		c.log.Warnf("news fetch failed: decode error: %v", err)
		return Headlines{}, commonerrors.ErrNewsUnavailable.WithCause(err)
	}

	metrics.NewsFetchDurationSeconds.Observe(time.Since(start).Seconds())
	return headlines, nil
}
