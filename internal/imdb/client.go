package imdb

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultBaseURL = "https://www.imdb.com"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:106.0) Gecko/20100101 Firefox/106.0"
)

// titleIDPattern matches the numeric part of an IMDb title id. The
// 7-digit minimum keeps extracted ids in canonical zero-padded form.
var titleIDPattern = regexp.MustCompile(`(\d{7,8})`)

// Client queries IMDb's public search pages anonymously. It is
// read-only after construction and safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "imdb")
	}
}

// New creates an IMDb client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) getDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imdb: %s: %s", pageURL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// Advanced searches the listing endpoint scoped to a release-year
// window and takes the first listing. The listing carries both the
// title id and a "N min" runtime, so no follow-up request is needed.
func (c *Client) Advanced(ctx context.Context, title string, yearStart, yearEnd int) (*Candidate, error) {
	query := url.Values{}
	query.Set("title", NormalizeQuery(title))
	query.Set("release_date", fmt.Sprintf("%d,%d", yearStart, yearEnd))
	query.Set("adult", "include")

	doc, err := c.getDocument(ctx, c.baseURL+"/search/title/?"+query.Encode())
	if err != nil {
		return nil, err
	}

	item := doc.Find("div.lister-item-image").First()
	if item.Length() == 0 {
		return nil, ErrZeroResults
	}

	html, _ := item.Html()
	id := titleIDPattern.FindString(html)
	if id == "" {
		return nil, ErrZeroResults
	}

	displayTitle := item.Find("img.loadlate").First().AttrOr("alt", "")

	runtime := strings.TrimSpace(strings.ReplaceAll(doc.Find(".runtime").First().Text(), " min", ""))
	minutes, err := strconv.Atoi(runtime)
	if err != nil {
		if c.log != nil {
			c.log.Debug("listing runtime unparseable", "title", title, "raw", runtime)
		}
		return nil, ErrInvalidDuration
	}

	return &Candidate{
		ID:       id,
		Title:    displayTitle,
		Duration: minutes,
	}, nil
}

// Find runs the quick-find search, takes the first textual result and
// follows its detail page to read the runtime from the inline
// metadata list.
func (c *Client) Find(ctx context.Context, title string, year int) (*Candidate, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("%s %d", NormalizeQuery(title), year))

	doc, err := c.getDocument(ctx, c.baseURL+"/find?"+query.Encode())
	if err != nil {
		return nil, err
	}

	link := doc.Find(".result_text a").First()
	if link.Length() == 0 {
		return nil, ErrZeroResults
	}

	displayTitle := strings.TrimSpace(link.Text())
	href := link.AttrOr("href", "")
	id := titleIDPattern.FindString(href)
	if id == "" {
		return nil, ErrZeroResults
	}

	minutes, err := c.detailRuntime(ctx, c.baseURL+href)
	if err != nil {
		return nil, err
	}

	return &Candidate{
		ID:       id,
		Title:    displayTitle,
		Duration: minutes,
	}, nil
}

// detailRuntime extracts the runtime from a title detail page. The
// runtime lives at a fixed position in the inline metadata list, one
// slot later when a content-rating entry is present; the positions
// are a page-layout contract that must be re-verified whenever IMDb
// changes the detail page.
func (c *Client) detailRuntime(ctx context.Context, detailURL string) (int, error) {
	doc, err := c.getDocument(ctx, detailURL)
	if err != nil {
		return 0, err
	}

	items := doc.Find(".ipc-inline-list__item")
	slot := strings.TrimSpace(items.Eq(5).Text())
	if strings.Contains(slot, "Unrated") || strings.Contains(slot, "Not Rated") || strings.Contains(slot, "TV") {
		slot = strings.TrimSpace(items.Eq(6).Text())
	}

	if len(slot) > 40 {
		return 0, ErrInvalidDuration
	}

	return parseRuntime(slot)
}

// parseRuntime converts detail-page runtime text to minutes. Two
// numeric tokens are hours and minutes; a single token is minutes.
func parseRuntime(s string) (int, error) {
	var tokens []int
	for _, field := range strings.Fields(strings.NewReplacer("h", " ", "m", " ").Replace(s)) {
		if n, err := strconv.Atoi(field); err == nil {
			tokens = append(tokens, n)
		}
	}

	switch {
	case len(tokens) >= 2:
		return tokens[0]*60 + tokens[1], nil
	case len(tokens) == 1:
		return tokens[0], nil
	default:
		return 0, ErrInvalidDuration
	}
}
