package slacklists

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"
)

// Client is the HTTP wrapper for the Slack Lists Web API.
type Client struct {
	http    *resty.Client
	token   string
	limiter *rate.Limiter

	pollAttempts int
	pollInterval time.Duration
}

type apiResponse interface {
	status() (bool, string)
}

// NewClient creates a new Slack Lists client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RetryCount < 0 {
		cfg.RetryCount = 0
	} else if cfg.RetryCount == 0 {
		cfg.RetryCount = defaultRetryCount
	}
	if cfg.DownloadPollAttempts <= 0 {
		cfg.DownloadPollAttempts = defaultDownloadPollAttempts
	}
	if cfg.DownloadPollInterval <= 0 {
		cfg.DownloadPollInterval = defaultDownloadPollInterval
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json; charset=utf-8").
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.Token).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(10 * time.Second).
		SetRetryAfter(retryAfter).
		AddRetryCondition(retryCondition)

	var limiter *rate.Limiter
	if cfg.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RatePerMinute)/60.0), max(1, cfg.RatePerMinute/10))
	}

	return &Client{
		http:         httpClient,
		token:        cfg.Token,
		limiter:      limiter,
		pollAttempts: cfg.DownloadPollAttempts,
		pollInterval: cfg.DownloadPollInterval,
	}
}

// HasToken reports whether a user token is configured.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// ListItems returns every item of a list, following the pagination cursor.
func (c *Client) ListItems(ctx context.Context, listID string) ([]Item, error) {
	var items []Item
	cursor := ""
	for page := 0; page < maxItemPages; page++ {
		var out itemsListResponse
		req := itemsListRequest{ListID: listID, Limit: itemsPageSize, Cursor: cursor}
		if err := c.call(ctx, MethodItemsList, req, &out); err != nil {
			return nil, err
		}
		items = append(items, out.Items...)

		cursor = out.ResponseMetadata.NextCursor
		if cursor == "" {
			return items, nil
		}
	}
	return nil, ErrTooManyItemPages
}

// ItemInfo fetches one item together with the list object (name and column schema).
func (c *Client) ItemInfo(ctx context.Context, listID, itemID string) (*ItemInfo, error) {
	var out itemInfoResponse
	if err := c.call(ctx, MethodItemsInfo, itemInfoRequest{ListID: listID, ID: itemID}, &out); err != nil {
		return nil, err
	}
	return &out.ItemInfo, nil
}

// StartDownload starts a CSV export job and returns its id.
func (c *Client) StartDownload(ctx context.Context, listID string) (string, error) {
	var out downloadStartResponse
	if err := c.call(ctx, MethodDownloadStart, downloadStartRequest{ListID: listID}, &out); err != nil {
		return "", err
	}
	return out.JobID, nil
}

// GetDownload reports the state of an export job.
func (c *Client) GetDownload(ctx context.Context, listID, jobID string) (*DownloadStatus, error) {
	var out downloadGetResponse
	if err := c.call(ctx, MethodDownloadGet, downloadGetRequest{ListID: listID, JobID: jobID}, &out); err != nil {
		return nil, err
	}
	return &out.DownloadStatus, nil
}

// DownloadExport runs a full export: start the job, poll until it completes and fetch the CSV.
func (c *Client) DownloadExport(ctx context.Context, listID string) (Export, error) {
	jobID, err := c.StartDownload(ctx, listID)
	if err != nil {
		return Export{}, err
	}

	var status *DownloadStatus
	backoff := retry.WithMaxRetries(uint64(c.pollAttempts-1), retry.NewConstant(c.pollInterval))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		st, err := c.GetDownload(ctx, listID, jobID)
		if err != nil {
			return retry.RetryableError(err)
		}
		if st.Status != StatusCompleted {
			return retry.RetryableError(ErrDownloadPending)
		}
		status = st
		return nil
	})
	if err != nil {
		return Export{}, fmt.Errorf("slacklists: export job %s: %w", jobID, err)
	}
	if status.DownloadURL == "" {
		return Export{}, ErrNoDownloadURL
	}

	data, err := c.fetchFile(ctx, status.DownloadURL)
	if err != nil {
		return Export{}, err
	}
	return ParseExport(data)
}

func (c *Client) fetchFile(ctx context.Context, url string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "text/csv").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("slacklists: failed to download export: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("slacklists: export download error %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

// call POSTs body to a Web API method and decodes the envelope into out.
func (c *Client) call(ctx context.Context, method string, body any, out apiResponse) error {
	if c.token == "" {
		return ErrMissingToken
	}
	if err := c.wait(ctx); err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		Post("/" + method)
	if err != nil {
		return fmt.Errorf("slacklists: failed to call %s: %w", method, err)
	}
	if resp.IsError() {
		return fmt.Errorf("slacklists: %s http error %d: %s", method, resp.StatusCode(), resp.String())
	}

	if ok, code := out.status(); !ok {
		return &APIError{Method: method, Code: code}
	}
	return nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("slacklists: rate limiter: %w", err)
	}
	return nil
}

func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
}

// retryAfter honours Slack's Retry-After header on 429 responses.
func retryAfter(_ *resty.Client, r *resty.Response) (time.Duration, error) {
	if r == nil || r.StatusCode() != http.StatusTooManyRequests {
		return 0, nil
	}
	secs, err := strconv.Atoi(r.Header().Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0, nil
	}
	return time.Duration(secs) * time.Second, nil
}

// ParseExport parses a list CSV export into headers and rows.
func ParseExport(data []byte) (Export, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return Export{}, nil
	}
	if err != nil {
		return Export{}, fmt.Errorf("slacklists: failed to read export header: %w", err)
	}

	export := Export{Columns: header}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Export{}, fmt.Errorf("slacklists: failed to read export row: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		export.Rows = append(export.Rows, row)
	}
	return export, nil
}
