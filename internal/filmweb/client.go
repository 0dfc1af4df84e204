// Package filmweb scrapes a user's rated and watchlisted titles from
// filmweb.pl using limited-trust session cookies.
package filmweb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultBaseURL = "https://www.filmweb.pl"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:106.0) Gecko/20100101 Firefox/106.0"
)

// Credentials are the three session cookies from a logged-in browser.
type Credentials struct {
	Token   string // _fwuser_token
	Session string // _fwuser_sessionId
	JWT     string // JWT
}

func (c Credentials) cookieHeader() string {
	return fmt.Sprintf("_fwuser_token=%s; _fwuser_sessionId=%s; JWT=%s;",
		strings.TrimSpace(c.Token), strings.TrimSpace(c.Session), strings.TrimSpace(c.JWT))
}

// Client is an authenticated Filmweb scraping client. It is read-only
// after construction and safe for concurrent use.
type Client struct {
	baseURL    string
	creds      Credentials
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
		c.log = log.With("component", "filmweb")
	}
}

// New creates an authenticated Filmweb client.
func New(creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cookie", c.creds.cookieHeader())
	req.Header.Set("Connection", "keep-alive")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		resp.Body.Close()
		return nil, ErrAuthRejected
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("filmweb: %s: %s", url, resp.Status)
	}
}

// getDocument fetches a page and parses it into a goquery document.
func (c *Client) getDocument(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// Username scrapes the account name from the settings page. The
// element is only rendered for a valid session, so its absence means
// the cookies were rejected.
func (c *Client) Username(ctx context.Context) (string, error) {
	doc, err := c.getDocument(ctx, c.baseURL+"/settings")
	if err != nil {
		return "", err
	}

	sel := doc.Find(".mainSettings__groupItemStateContent").Eq(2)
	if sel.Length() == 0 {
		return "", ErrAuthRejected
	}
	return strings.TrimSpace(sel.Text()), nil
}

// profile vote-stats JSON embedded in the user page.
type userCounts struct {
	Votes struct {
		Films   int `json:"films"`
		Serials int `json:"serials"`
	} `json:"votes"`
	W2S struct {
		Films   int `json:"films"`
		Serials int `json:"serials"`
	} `json:"w2s"`
}

// Counts scrapes the per-category title totals from the user's profile.
func (c *Client) Counts(ctx context.Context, username string) (Counts, error) {
	doc, err := c.getDocument(ctx, c.baseURL+"/user/"+username)
	if err != nil {
		return Counts{}, err
	}

	raw := doc.Find(".voteStatsBoxData").First().Text()
	if strings.TrimSpace(raw) == "" {
		return Counts{}, fmt.Errorf("profile of %s: vote stats not found", username)
	}

	var uc userCounts
	if err := json.Unmarshal([]byte(raw), &uc); err != nil {
		return Counts{}, fmt.Errorf("decode vote stats: %w", err)
	}

	counts := Counts{
		Films:     uc.Votes.Films,
		Serials:   uc.Votes.Serials,
		WantToSee: uc.W2S.Films + uc.W2S.Serials,
	}
	if c.log != nil {
		c.log.Debug("fetched profile counts",
			"user", username, "films", counts.Films, "serials", counts.Serials, "want2see", counts.WantToSee)
	}
	return counts, nil
}
