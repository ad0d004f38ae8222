package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"cookbook-cleanup/internal/shared"
)

const defaultChefRetries = 3
const defaultChefRetryDelay = 200 * time.Millisecond
const defaultChefTimeout = 60 * time.Second
const maxChefRetryDelay = 2 * time.Second

// ChefClient is a signed JSON client for the Chef server REST API. BaseURL
// includes the organization path, e.g. https://chef.example.com/organizations/acme.
type ChefClient struct {
	BaseURL    string
	Signer     chefSigner
	HTTP       *http.Client
	Retries    int
	RetryDelay time.Duration
}

func NewChefClient(baseURL string, clientName string, keyPath string, timeoutSec int, retries int, retryDelayMs int) (*ChefClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("chef server url is required")
	}
	if strings.TrimSpace(clientName) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("chef client name is required")
	}
	if strings.TrimSpace(keyPath) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("chef client key is required")
	}
	key, err := loadClientKey(keyPath)
	if err != nil {
		return nil, err
	}
	return &ChefClient{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Signer:     chefSigner{ClientName: strings.TrimSpace(clientName), Key: key},
		HTTP:       &http.Client{Timeout: normalizeChefTimeout(timeoutSec)},
		Retries:    normalizeChefRetries(retries),
		RetryDelay: normalizeChefRetryDelay(retryDelayMs),
	}, nil
}

func (c *ChefClient) endpoint(path string, query url.Values) string {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

func (c *ChefClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return err
	}
	return decodeChefJSON(body, out)
}

func (c *ChefClient) postJSON(ctx context.Context, path string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode chef request").
			WithCause(err)
	}
	body, err := c.do(ctx, http.MethodPost, c.endpoint(path, nil), payload)
	if err != nil {
		return err
	}
	return decodeChefJSON(body, out)
}

func (c *ChefClient) deletePath(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, c.endpoint(path, nil), nil)
	return err
}

// fetch downloads an absolute URL, such as a cookbook file location.
func (c *ChefClient) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, rawURL, nil)
}

// do retries transport failures, 429 and 5xx responses with exponential
// backoff. Other 4xx responses fail immediately.
func (c *ChefClient) do(ctx context.Context, method string, rawURL string, payload []byte) ([]byte, error) {
	var body []byte
	attempt := 0
	operation := func() error {
		attempt++
		data, retry, err := c.doOnce(ctx, method, rawURL, payload)
		if err == nil {
			body = data
			return nil
		}
		if !retry {
			return backoff.Permanent(err)
		}
		log.Ctx(ctx).Debug().Err(err).Int("attempt", attempt).Str("url", rawURL).Msg("chef request failed, retrying")
		return err
	}
	if err := backoff.Retry(operation, c.retryPolicy(ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *ChefClient) retryPolicy(ctx context.Context) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.RetryDelay
	bo.MaxInterval = maxChefRetryDelay
	bo.MaxElapsedTime = 0
	retries := c.Retries - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(bo, uint64(retries)), ctx)
}

func (c *ChefClient) doOnce(ctx context.Context, method string, rawURL string, payload []byte) ([]byte, bool, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to create chef request").
			WithCause(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.Signer.Sign(req, payload); err != nil {
		return nil, false, err
	}
	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: defaultChefTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("chef server %s request failed", method)).
			WithCause(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read chef response").
			WithCause(err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, false, nil
	}
	retry := resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
	return nil, retry, errbuilder.New().
		WithCode(codeForChefStatus(resp.StatusCode)).
		WithMsg(fmt.Sprintf("chef server %s %s failed", method, req.URL.Path)).
		WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, rawURL, strings.TrimSpace(string(body))))
}

func codeForChefStatus(status int) errbuilder.ErrCode {
	switch status {
	case http.StatusBadRequest:
		return errbuilder.CodeInvalidArgument
	case http.StatusPreconditionFailed:
		return errbuilder.CodeFailedPrecondition
	case http.StatusUnauthorized, http.StatusForbidden:
		return errbuilder.CodePermissionDenied
	case http.StatusNotFound:
		return errbuilder.CodeNotFound
	case http.StatusConflict:
		return errbuilder.CodeAlreadyExists
	default:
		return errbuilder.CodeInternal
	}
}

func decodeChefJSON(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse chef response").
			WithCause(err)
	}
	return nil
}

func normalizeChefTimeout(value int) time.Duration {
	timeout := time.Duration(value) * time.Second
	if timeout <= 0 {
		return defaultChefTimeout
	}
	return timeout
}

func normalizeChefRetries(value int) int {
	if value <= 0 {
		return defaultChefRetries
	}
	return value
}

func normalizeChefRetryDelay(value int) time.Duration {
	delay := time.Duration(value) * time.Millisecond
	if delay <= 0 {
		return defaultChefRetryDelay
	}
	return delay
}
