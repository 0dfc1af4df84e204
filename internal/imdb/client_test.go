package imdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const advancedResultsHTML = `<!DOCTYPE html>
<html><body>
<div class="lister-item">
  <div class="lister-item-image">
    <a href="/title/tt0133093/"><img class="loadlate" alt="The Matrix" src="poster.jpg"></a>
  </div>
  <p><span class="runtime">136 min</span></p>
</div>
<div class="lister-item">
  <div class="lister-item-image">
    <a href="/title/tt0234215/"><img class="loadlate" alt="The Matrix Reloaded" src="poster2.jpg"></a>
  </div>
  <p><span class="runtime">138 min</span></p>
</div>
</body></html>`

func newTestSearchClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(WithBaseURL(server.URL))
}

func TestClient_Advanced(t *testing.T) {
	var gotQuery string
	client := newTestSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/title/", r.URL.Path)
		gotQuery = r.URL.Query().Get("title")
		assert.Equal(t, "1999,1999", r.URL.Query().Get("release_date"))
		fmt.Fprint(w, advancedResultsHTML)
	}))

	candidate, err := client.Advanced(context.Background(), "The Matrix", 1999, 1999)
	require.NoError(t, err)

	assert.Equal(t, "The Matrix", gotQuery)
	assert.Equal(t, "0133093", candidate.ID)
	assert.Equal(t, "The Matrix", candidate.Title)
	assert.Equal(t, 136, candidate.Duration)
}

func TestClient_Advanced_NormalizesQuery(t *testing.T) {
	var gotQuery string
	client := newTestSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("title")
		fmt.Fprint(w, advancedResultsHTML)
	}))

	_, err := client.Advanced(context.Background(), "Léon & Mathilda", 1994, 1994)
	require.NoError(t, err)
	assert.Equal(t, "Leon and Mathilda", gotQuery)
}

func TestClient_Advanced_ModernEightDigitID(t *testing.T) {
	client := newTestSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<div class="lister-item-image">
  <a href="/title/tt15398776/"><img class="loadlate" alt="Oppenheimer"></a>
</div>
<span class="runtime">180 min</span>
</body></html>`)
	}))

	candidate, err := client.Advanced(context.Background(), "Oppenheimer", 2023, 2023)
	require.NoError(t, err)
	assert.Equal(t, "15398776", candidate.ID)
}

func TestClient_Advanced_ZeroResults(t *testing.T) {
	client := newTestSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="no-results">No results.</div></body></html>`)
	}))

	_, err := client.Advanced(context.Background(), "zxqvw", 1900, 1901)
	assert.ErrorIs(t, err, ErrZeroResults)
}

func TestClient_Advanced_MissingRuntime(t *testing.T) {
	client := newTestSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<div class="lister-item-image">
  <a href="/title/tt0133093/"><img class="loadlate" alt="The Matrix"></a>
</div>
</body></html>`)
	}))

	_, err := client.Advanced(context.Background(), "The Matrix", 1999, 1999)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestClient_Advanced_HTTPError(t *testing.T) {
	client := newTestSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))

	_, err := client.Advanced(context.Background(), "The Matrix", 1999, 1999)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrZeroResults)
}

func findFixture(detailBody string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/find", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<table class="findList">
  <td class="result_text"><a href="/title/tt0095327/">Grave of the Fireflies</a> (1988)</td>
  <td class="result_text"><a href="/title/tt8354224/">Fireflies</a> (2018)</td>
</table>
</body></html>`)
	})
	mux.HandleFunc("/title/tt0095327/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, detailBody)
	})
	return mux
}

func detailPageHTML(slots ...string) string {
	body := "<html><body><ul>"
	for _, slot := range slots {
		body += `<li class="ipc-inline-list__item">` + slot + "</li>"
	}
	return body + "</ul></body></html>"
}

func TestClient_Find(t *testing.T) {
	detail := detailPageHTML("1988", "Animation", "Drama", "War", "Japan", "1h 29m", "8.5")
	client := newTestSearchClient(t, findFixture(detail))

	candidate, err := client.Find(context.Background(), "Grave of the Fireflies", 1988)
	require.NoError(t, err)

	assert.Equal(t, "0095327", candidate.ID)
	assert.Equal(t, "Grave of the Fireflies", candidate.Title)
	assert.Equal(t, 89, candidate.Duration)
}

func TestClient_Find_RatedDetailShiftsRuntimeSlot(t *testing.T) {
	detail := detailPageHTML("1988", "Animation", "Drama", "War", "Japan", "Not Rated", "1h 29m")
	client := newTestSearchClient(t, findFixture(detail))

	candidate, err := client.Find(context.Background(), "Grave of the Fireflies", 1988)
	require.NoError(t, err)
	assert.Equal(t, 89, candidate.Duration)
}

func TestClient_Find_OverlongSlotRejected(t *testing.T) {
	detail := detailPageHTML("1988", "Animation", "Drama", "War", "Japan",
		"An implausibly long review blurb that is clearly not a runtime value at all", "8.5")
	client := newTestSearchClient(t, findFixture(detail))

	_, err := client.Find(context.Background(), "Grave of the Fireflies", 1988)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestClient_Find_ZeroResults(t *testing.T) {
	client := newTestSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="findNoResults">No results found.</div></body></html>`)
	}))

	_, err := client.Find(context.Background(), "zxqvw", 1900)
	assert.ErrorIs(t, err, ErrZeroResults)
}

func TestParseRuntime(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"1h 29m", 89, false},
		{"2h 16m", 136, false},
		{"45m", 45, false},
		{"1h 33m", 93, false},
		{"", 0, true},
		{"TV Series", 0, true},
	}

	for _, tt := range tests {
		got, err := parseRuntime(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidDuration, "input=%q", tt.input)
			continue
		}
		assert.NoError(t, err, "input=%q", tt.input)
		assert.Equal(t, tt.want, got, "input=%q", tt.input)
	}
}
