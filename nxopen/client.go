// Package nxopen talks to the NXOpen MapleStory API. Every call issues exactly
// one categorized GET request authenticated with the upstream API key.
package nxopen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	maplegw "github.com/maplegw/go-maplegw"
	"golang.org/x/net/proxy"
)

const (
	apiKeyHeader = "x-nxopen-api-key"

	defaultTimeout       = 10 * time.Second
	defaultRetryInterval = 250 * time.Millisecond

	// maxDrainSize bounds how much of a rejected response body is read before closing it.
	maxDrainSize = 64 * 1024
)

// KeyProvider gives access to the upstream API key.
type KeyProvider interface {
	ApiKey() string
}

type Client struct {
	log maplegw.Logger

	baseUrl *url.URL
	client  *http.Client
	keys    KeyProvider

	retries       int
	retryInterval time.Duration

	now func() time.Time
}

type Options struct {
	Log maplegw.Logger

	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl string

	Keys KeyProvider

	// Client is used as is when provided, otherwise a client dialing through
	// the proxy configured in the environment is created.
	Client  *http.Client
	Timeout time.Duration

	// Retries is how many times a request is retried after a transport
	// failure. Rejected requests are never retried.
	Retries       int
	RetryInterval time.Duration

	Now func() time.Time
}

func NewClient(opts *Options) (*Client, error) {
	if opts.Keys == nil {
		return nil, fmt.Errorf("missing api key provider")
	}

	rawBaseUrl := opts.BaseUrl
	if len(rawBaseUrl) == 0 {
		rawBaseUrl = DefaultBaseUrl
	}

	baseUrl, err := url.Parse(rawBaseUrl)
	if err != nil {
		return nil, fmt.Errorf("invalid nxopen base url: %w", err)
	} else if baseUrl.Scheme != "http" && baseUrl.Scheme != "https" {
		return nil, fmt.Errorf("invalid nxopen base url scheme: %s", rawBaseUrl)
	}

	c := &Client{
		log:           opts.Log,
		baseUrl:       baseUrl,
		client:        opts.Client,
		keys:          opts.Keys,
		retries:       opts.Retries,
		retryInterval: opts.RetryInterval,
		now:           opts.Now,
	}

	if c.log == nil {
		c.log = &maplegw.NullLogger{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.retryInterval <= 0 {
		c.retryInterval = defaultRetryInterval
	}
	if c.retries < 0 {
		c.retries = 0
	}

	if c.client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}

		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.DialContext = proxy.Dial
		c.client = &http.Client{Timeout: timeout, Transport: transport}
	}

	return c, nil
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.retries)), ctx)
}

func (c *Client) request(ctx context.Context, category maplegw.Category, path string, query url.Values) ([]byte, error) {
	reqUrl := c.baseUrl.JoinPath(path)
	reqUrl.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", reqUrl.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed building %s request: %w", category, err)
	}

	req.Header = http.Header{
		"Accept":     []string{"application/json"},
		"User-Agent": []string{maplegw.UserAgent()},
	}
	req.Header.Set(apiKeyHeader, c.keys.ApiKey())

	var resp *http.Response
	attempt := 0
	err = backoff.Retry(func() error {
		attempt++

		var err error
		resp, err = c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}

			c.log.WithError(err).Debugf("%s request attempt %d failed", category, attempt)
			return err
		}

		return nil
	}, c.newBackOff(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: failed requesting %s: %w", ErrUpstreamUnreachable, category, err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainSize))
		return nil, &StatusError{Category: category, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed reading %s response: %w", ErrUpstreamUnreachable, category, err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: invalid json in %s response", ErrMalformedPayload, category)
	}

	return body, nil
}

// Fetch requests the data of a character category for the given identity.
// Extra parameters are appended to the query, the date parameter is added
// automatically for dated categories.
func (c *Client) Fetch(ctx context.Context, category maplegw.Category, ocid maplegw.Ocid, extra url.Values) (json.RawMessage, error) {
	ep, ok := endpoints[category]
	if !ok || !category.IsCharacter() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	query := url.Values{}
	for k, v := range extra {
		query[k] = v
	}

	query.Set("ocid", ocid.String())
	if ep.dated {
		query.Set("date", QueryDate(c.now()))
	}

	c.log.WithField("category", category).Tracef("fetching character data")

	body, err := c.request(ctx, category, ep.path, query)
	if err != nil {
		return nil, err
	}

	return body, nil
}

type ocidResponse struct {
	Ocid string `json:"ocid"`
}

// LookupOcid resolves a character name to its identity.
func (c *Client) LookupOcid(ctx context.Context, characterName string) (maplegw.Ocid, error) {
	if len(characterName) == 0 {
		return "", fmt.Errorf("missing character name")
	}

	ep := endpoints[maplegw.CategoryOcid]
	body, err := c.request(ctx, maplegw.CategoryOcid, ep.path, url.Values{"character_name": []string{characterName}})
	if err != nil {
		return "", err
	}

	var resp ocidResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: failed unmarshalling ocid response: %w", ErrMalformedPayload, err)
	}

	ocid := maplegw.Ocid(resp.Ocid)
	if !ocid.Valid() {
		return "", fmt.Errorf("%w: empty ocid in response", ErrMalformedPayload)
	}

	return ocid, nil
}

// IsRejected reports whether err comes from an upstream non-2xx answer.
func IsRejected(err error) bool {
	return errors.Is(err, ErrUpstreamRejected)
}
