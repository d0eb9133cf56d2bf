// Package marvel provides a client for the Marvel Comics API.
package marvel

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/patrickmn/go-cache"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cast"

	"github.com/osa030/marvelgo/internal/domain/entity"
)

const (
	// DefaultBaseURL is the public endpoint of the API.
	DefaultBaseURL = "https://gateway.marvel.com/v1/public"
	// MaxPageSize is the largest limit the API accepts.
	MaxPageSize = 100
	// DefaultPageSize is used when no page size is given.
	DefaultPageSize = 20
)

var (
	ErrAPI      = errors.New("marvel API error")
	ErrNotFound = errors.New("resource not found")
)

// APIError is an error response of the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("marvel API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Is makes errors.Is match ErrAPI, and ErrNotFound for a 404.
func (e *APIError) Is(target error) bool {
	return target == ErrAPI || (target == ErrNotFound && e.StatusCode == http.StatusNotFound)
}

// Config represents Marvel client configuration.
type Config struct {
	PublicKey  string
	PrivateKey string
	BaseURL    string
	Timeout    time.Duration
	RetryMax   int
	// CacheTTL enables the response cache when positive.
	CacheTTL time.Duration
}

// Client is a Marvel API client.
type Client struct {
	publicKey  string
	privateKey string
	baseURL    string
	http       *retryablehttp.Client
	cache      *cache.Cache
	now        func() time.Time
}

// New creates a new Marvel client.
func New(cfg Config) (*Client, error) {
	if cfg.PublicKey == "" || cfg.PrivateKey == "" {
		return nil, errors.New("marvel public and private keys are required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.Logger = newRetryLogger(zlog.Logger)
	// Keep the last response once retries run out so the error envelope can be read.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		http:       retryClient,
		now:        time.Now,
	}
	if cfg.CacheTTL > 0 {
		c.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return c, nil
}

// Search fetches one page of a resource matching criteria.
// Reference: https://developer.marvel.com/docs
func (c *Client) Search(ctx context.Context, resource string, criteria url.Values, offset, limit int) (entity.DataWrapper, error) {
	if resource == "" {
		return entity.DataWrapper{}, errors.New("resource is required")
	}
	if limit < 1 || limit > MaxPageSize {
		return entity.DataWrapper{}, errors.Newf("limit must be between 1 and %d, got %d", MaxPageSize, limit)
	}
	if offset < 0 {
		return entity.DataWrapper{}, errors.Newf("offset must not be negative, got %d", offset)
	}

	params := url.Values{}
	for k, v := range criteria {
		params[k] = append([]string(nil), v...)
	}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))

	return c.get(ctx, "/"+resource, params)
}

// Get fetches a single resource by id and returns its raw object.
func (c *Client) Get(ctx context.Context, resource string, id int) (map[string]any, error) {
	if resource == "" {
		return nil, errors.New("resource is required")
	}
	if id <= 0 {
		return nil, errors.Newf("invalid %s id %d", resource, id)
	}

	wrapper, err := c.get(ctx, fmt.Sprintf("/%s/%d", resource, id), url.Values{})
	if err != nil {
		return nil, err
	}
	results := wrapper.Data.Maps()
	if len(results) == 0 {
		return nil, errors.Mark(errors.Newf("%s %d not found", resource, id), ErrNotFound)
	}
	return results[0], nil
}

// authParams signs a request with the server-side key scheme.
func (c *Client) authParams(params url.Values) {
	ts := strconv.FormatInt(c.now().UnixNano(), 10)
	sum := md5.Sum([]byte(ts + c.privateKey + c.publicKey))
	params.Set("ts", ts)
	params.Set("apikey", c.publicKey)
	params.Set("hash", hex.EncodeToString(sum[:]))
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (entity.DataWrapper, error) {
	// Cache key without auth params
	cacheKey := path + "?" + params.Encode()
	if c.cache != nil {
		if v, ok := c.cache.Get(cacheKey); ok {
			zlog.Debug().Str("path", cacheKey).Msg("using cached marvel response")
			return v.(entity.DataWrapper), nil
		}
	}

	c.authParams(params)
	reqID := uuid.NewString()
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return entity.DataWrapper{}, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	zlog.Debug().Str("request_id", reqID).Str("path", cacheKey).Msg("sending marvel request")
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return entity.DataWrapper{}, errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.DataWrapper{}, errors.Wrap(err, "failed to read response body")
	}

	zlog.Debug().
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("received marvel response")

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		if resp.StatusCode != http.StatusOK {
			return entity.DataWrapper{}, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		}
		return entity.DataWrapper{}, errors.Wrap(err, "failed to parse response")
	}

	if resp.StatusCode != http.StatusOK {
		return entity.DataWrapper{}, newAPIError(resp.StatusCode, raw)
	}

	wrapper, err := entity.DataWrapperFromMap(raw)
	if err != nil {
		return entity.DataWrapper{}, errors.Wrap(err, "failed to read response envelope")
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, wrapper, cache.DefaultExpiration)
	}
	return wrapper, nil
}

// newAPIError reads an error envelope. The API uses a numeric code with a
// status for validation errors and a string code with a message for auth errors.
func newAPIError(statusCode int, raw map[string]any) *APIError {
	e := &APIError{StatusCode: statusCode, Code: cast.ToString(raw["code"])}
	for _, key := range []string{"message", "status"} {
		if s := cast.ToString(raw[key]); s != "" {
			e.Message = s
			break
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(statusCode)
	}
	return e
}
