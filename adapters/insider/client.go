// Package insider prices items by scraping the public price pages of the
// item catalog. One page is fetched per item; the price is read from a
// single designated element.
package insider

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"

	"github.com/XavierBriggs/Midas/pkg/contracts"
	"github.com/XavierBriggs/Midas/pkg/models"
)

const (
	// PCPriceSelector selects the PC price range on an item page
	PCPriceSelector = "#SteamPrice > .pfData"

	defaultUserAgent = "Midas/1.0 (Inventory Appraiser)"
	timeout          = 10 * time.Second
	priceSeparator   = " - "
	maxErrorBody     = 200
)

// Client implements the PriceSource interface for the catalog's HTML pages
type Client struct {
	httpClient *http.Client
	selector   string
	userAgent  string
}

// Ensure Client implements PriceSource
var _ contracts.PriceSource = (*Client)(nil)

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSelector changes which element holds the price
func WithSelector(selector string) Option {
	return func(c *Client) {
		if selector != "" {
			c.selector = selector
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a new catalog client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		selector:  PCPriceSelector,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPrice retrieves the item page at url and extracts its price range.
// It performs exactly one request and never retries.
func (c *Client) FetchPrice(ctx context.Context, url string) (models.PriceRange, error) {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return models.PriceRange{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return models.PriceRange{}, &models.FetchError{Kind: models.FetchErrorMalformed, URL: url, Detail: "parse document", Err: err}
	}

	node := doc.Find(c.selector).First()
	if node.Length() == 0 {
		return models.PriceRange{}, &models.FetchError{
			Kind:   models.FetchErrorNotFound,
			URL:    url,
			Detail: fmt.Sprintf("could not find price element %q on page", c.selector),
		}
	}

	price, err := ParsePriceRange(node.Text())
	if err != nil {
		if fe, ok := err.(*models.FetchError); ok {
			fe.URL = url
		}
		return models.PriceRange{}, err
	}

	return price, nil
}

// ParsePriceRange parses price text of the form "<low> - <high>"
func ParsePriceRange(text string) (models.PriceRange, error) {
	raw := strings.TrimSpace(text)

	lowText, highText, found := strings.Cut(raw, priceSeparator)
	if !found {
		return models.PriceRange{}, &models.FetchError{
			Kind:   models.FetchErrorMalformed,
			Detail: fmt.Sprintf("malformed price %q", raw),
		}
	}

	low, err := strconv.ParseUint(lowText, 10, 64)
	if err != nil {
		return models.PriceRange{}, &models.FetchError{Kind: models.FetchErrorNonNumeric, Detail: fmt.Sprintf("price %q", raw), Err: err}
	}

	high, err := strconv.ParseUint(highText, 10, 64)
	if err != nil {
		return models.PriceRange{}, &models.FetchError{Kind: models.FetchErrorNonNumeric, Detail: fmt.Sprintf("price %q", raw), Err: err}
	}

	if low > high {
		return models.PriceRange{}, &models.FetchError{
			Kind:   models.FetchErrorMalformed,
			Detail: fmt.Sprintf("inverted price range %q", raw),
		}
	}

	return models.PriceRange{Low: low, High: high}, nil
}

// doRequest performs a single HTTP request and returns the decoded body
func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &models.FetchError{Kind: models.FetchErrorTransport, URL: url, Detail: "create request", Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Encoding", "gzip, br, zstd")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &models.FetchError{Kind: models.FetchErrorTransport, URL: url, Detail: "execute request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &models.FetchError{
			Kind:   models.FetchErrorHTTPStatus,
			URL:    url,
			Detail: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(preview))),
		}
	}

	body, err := readBodyDecode(resp)
	if err != nil {
		return nil, &models.FetchError{Kind: models.FetchErrorTransport, URL: url, Detail: "read response body", Err: err}
	}

	return body, nil
}

// readBodyDecode reads the response body and undoes every coding listed in
// Content-Encoding, last applied first. Unknown codings are an error.
func readBodyDecode(resp *http.Response) ([]byte, error) {
	var body io.Reader = resp.Body

	codings := strings.Split(resp.Header.Get("Content-Encoding"), ",")
	for i := len(codings) - 1; i >= 0; i-- {
		enc := strings.ToLower(strings.TrimSpace(codings[i]))
		switch enc {
		case "", "identity":
		case "br":
			body = brotli.NewReader(body)
		case "zstd":
			r, err := zstd.NewReader(body)
			if err != nil {
				return nil, fmt.Errorf("zstd reader: %w", err)
			}
			defer r.Close()
			body = r
		case "gzip", "x-gzip":
			r, err := gzip.NewReader(body)
			if err != nil {
				return nil, fmt.Errorf("gzip reader: %w", err)
			}
			defer r.Close()
			body = r
		default:
			return nil, fmt.Errorf("unsupported content encoding %q", enc)
		}
	}

	return io.ReadAll(body)
}
