package filmweb

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page fetches and parses one listing page of a user's category.
// It returns the parsed titles along with any per-record parse
// failures; a record-level failure never fails the page. Only an
// invalidated session or an unreachable listing page is returned as
// the final error.
func (c *Client) Page(ctx context.Context, username string, cat Category, page int) ([]Title, []error, error) {
	if page < 1 {
		return nil, nil, fmt.Errorf("page number must be >= 1, got %d", page)
	}

	url := fmt.Sprintf("%s/user/%s/%s?page=%d", c.baseURL, username, cat.pathSegment(), page)
	doc, err := c.getDocument(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	var (
		titles    []Title
		parseErrs []error
		fatal     error
	)

	doc.Find("div.myVoteBox").EachWithBreak(func(_ int, box *goquery.Selection) bool {
		title, err := c.scrapeVoteBox(ctx, box, cat)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				parseErrs = append(parseErrs, pe)
				return true
			}
			fatal = err
			return false
		}
		titles = append(titles, title)
		return true
	})
	if fatal != nil {
		return nil, parseErrs, fatal
	}

	if c.log != nil {
		c.log.Debug("scraped listing page",
			"category", cat.String(), "page", page, "titles", len(titles), "skipped", len(parseErrs))
	}
	return titles, parseErrs, nil
}

// scrapeVoteBox turns one listing entry into a Title, following the
// title page for its duration, the titles subpage for alternate
// names, and the vote API for the user's rating.
func (c *Client) scrapeVoteBox(ctx context.Context, box *goquery.Selection, cat Category) (Title, error) {
	idAttr := strings.TrimSpace(box.Find(".previewFilm").First().AttrOr("data-film-id", ""))
	id, err := strconv.Atoi(idAttr)
	if err != nil {
		return Title{}, &ParseError{Field: "id", Value: idAttr}
	}

	year, err := ParseYear(box.Find(".preview__year").First().Text(), id)
	if err != nil {
		return Title{}, err
	}

	link := box.Find(".preview__link").First()
	name := strings.TrimSpace(link.Text())
	href, ok := link.Attr("href")
	if !ok || name == "" {
		return Title{}, &ParseError{TitleID: id, Field: "link", Value: name}
	}
	titleURL := c.baseURL + href

	var rating *Rating
	if cat != WantToSee {
		rating, err = c.fetchRating(ctx, cat, id)
		if err != nil {
			return Title{}, err
		}
	}

	alternates, err := c.fetchAlternates(ctx, titleURL+"/titles")
	if err != nil {
		// Alternate names only widen the search; carry on without them.
		if c.log != nil {
			c.log.Warn("failed to fetch alternate titles", "title_id", id, "error", err)
		}
		alternates = nil
	}

	return Title{
		ID:         id,
		URL:        titleURL,
		Name:       name,
		Alternates: alternates,
		Category:   cat,
		Duration:   c.fetchDuration(ctx, titleURL, id),
		Year:       year,
		Rating:     rating,
	}, nil
}

// fetchRating reads the user's vote through the logged-in JSON API.
// A 200 answer carries JSON only for a live JWT; a non-JSON body means
// the session was invalidated mid-run. Transport failures stay
// ordinary errors and fail only this page.
func (c *Client) fetchRating(ctx context.Context, cat Category, id int) (*Rating, error) {
	url := fmt.Sprintf("%s/api/v1/logged/vote/%s/%d/details", c.baseURL, cat.voteKind(), id)
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rating Rating
	if err := json.NewDecoder(resp.Body).Decode(&rating); err != nil {
		return nil, ErrAuthRejected
	}
	return &rating, nil
}

// fetchAlternates scrapes the localized title variants from a title's
// /titles subpage, pairing each name with its locale label.
func (c *Client) fetchAlternates(ctx context.Context, url string) ([]AlternateTitle, error) {
	doc, err := c.getDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	names := doc.Find(".filmTitlesSection__title")
	labels := doc.Find(".filmTitlesSection__desc")

	n := names.Length()
	if labels.Length() < n {
		n = labels.Length()
	}
	alternates := make([]AlternateTitle, 0, n)
	for i := 0; i < n; i++ {
		alternates = append(alternates, AlternateTitle{
			Label: strings.TrimSpace(labels.Eq(i).Text()),
			Title: strings.TrimSpace(names.Eq(i).Text()),
		})
	}
	return alternates, nil
}

// fetchDuration reads the runtime from the title's cover section.
// Missing or unparseable durations are common and simply mean there
// is nothing to corroborate against.
func (c *Client) fetchDuration(ctx context.Context, titleURL string, id int) int {
	doc, err := c.getDocument(ctx, titleURL)
	if err != nil {
		if c.log != nil {
			c.log.Warn("failed to fetch title page", "title_id", id, "error", err)
		}
		return 0
	}

	attr := doc.Find(".filmCoverSection__duration").First().AttrOr("data-duration", "")
	minutes, err := strconv.Atoi(strings.TrimSpace(attr))
	if err != nil {
		return 0
	}
	return minutes
}
