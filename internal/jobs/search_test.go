package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type searchPage struct {
	Items   []map[string]any `json:"items"`
	Found   int              `json:"found"`
	Pages   int              `json:"pages"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

func newTestServer(t *testing.T, pages []searchPage, requests *[]*http.Request) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			clone := r.Clone(r.Context())
			*requests = append(*requests, clone)
		}

		page := 0
		if raw := r.URL.Query().Get("page"); raw != "" {
			page = atoiOrZero(raw)
		}

		if page >= len(pages) {
			t.Fatalf("unexpected page requested: %d", page)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(pages[page]); err != nil {
			t.Fatalf("encoding page: %v", err)
		}
	}))
}

func atoiOrZero(raw string) int {
	n := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func newTestClient(token, apiURL string) *Client {
	client := New(zap.NewNop(), token)
	client.APIURL = apiURL
	return client
}

func TestSearchDecodesAndCleansPostings(t *testing.T) {
	var requests []*http.Request
	srv := newTestServer(t, []searchPage{{
		Items: []map[string]any{
			{
				"id":          "j1",
				"title":       "Go Developer",
				"company":     "Acme",
				"location":    "Berlin",
				"description": "<p>Build <strong>Go</strong> services.</p>",
				"apply_url":   "https://example.com/j1",
			},
		},
		Found: 1, Pages: 1, Page: 0, PerPage: 100,
	}}, &requests)
	defer srv.Close()

	client := newTestClient("secret-token", srv.URL)

	postings, err := client.Search(context.Background(), &SearchQuery{
		Text:     "go developer",
		Location: "Berlin",
		Skills:   []string{"Go", "PostgreSQL"},
		Period:   7,
		Limit:    5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if postings.Len() != 1 {
		t.Fatalf("expected 1 posting, got %d", postings.Len())
	}

	posting := postings.Items[0]
	if posting.ID != "j1" || posting.Title != "Go Developer" {
		t.Fatalf("posting not decoded: %+v", posting)
	}
	if strings.Contains(posting.Description, "<p>") {
		t.Fatalf("html not cleaned from description: %q", posting.Description)
	}
	if !strings.Contains(posting.Description, "Go") {
		t.Fatalf("description content lost: %q", posting.Description)
	}

	if len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requests))
	}

	req := requests[0]
	if req.Header.Get("Authorization") != "Bearer secret-token" {
		t.Fatalf("missing bearer token: %q", req.Header.Get("Authorization"))
	}

	q := req.URL.Query()
	if q.Get("q") != "go developer" {
		t.Fatalf("unexpected text param: %q", q.Get("q"))
	}
	if q.Get("location") != "Berlin" {
		t.Fatalf("unexpected location param: %q", q.Get("location"))
	}
	if len(q["skill"]) != 2 {
		t.Fatalf("expected repeated skill params, got %v", q["skill"])
	}
	if q.Get("period") != "7" {
		t.Fatalf("unexpected period param: %q", q.Get("period"))
	}
}

func TestSearchCapsLimit(t *testing.T) {
	items := make([]map[string]any, 0, MaxPostings+5)
	for i := 0; i < MaxPostings+5; i++ {
		items = append(items, map[string]any{
			"id":    string(rune('a' + i)),
			"title": "Job",
		})
	}

	srv := newTestServer(t, []searchPage{{
		Items: items, Found: len(items), Pages: 1, Page: 0, PerPage: 100,
	}}, nil)
	defer srv.Close()

	client := newTestClient("", srv.URL)

	postings, err := client.Search(context.Background(), &SearchQuery{Text: "job", Limit: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if postings.Len() != MaxPostings {
		t.Fatalf("expected %d postings after cap, got %d", MaxPostings, postings.Len())
	}
}

func TestSearchFollowsPagination(t *testing.T) {
	var requests []*http.Request
	srv := newTestServer(t, []searchPage{
		{
			Items:   []map[string]any{{"id": "j1", "title": "First"}},
			Found:   2,
			Pages:   2,
			Page:    0,
			PerPage: 1,
		},
		{
			Items:   []map[string]any{{"id": "j2", "title": "Second"}},
			Found:   2,
			Pages:   2,
			Page:    1,
			PerPage: 1,
		},
	}, &requests)
	defer srv.Close()

	client := newTestClient("", srv.URL)

	postings, err := client.Search(context.Background(), &SearchQuery{Text: "job", Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if postings.Len() != 2 {
		t.Fatalf("expected postings from both pages, got %d", postings.Len())
	}
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
	if postings.Items[1].ID != "j2" {
		t.Fatalf("second page not appended: %+v", postings.Items[1])
	}
}

func TestSearchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := newTestClient("", srv.URL)

	if _, err := client.Search(context.Background(), &SearchQuery{Text: "job"}); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}

func TestBuildParamsSkipsZeroValues(t *testing.T) {
	q := buildParams(&SearchQuery{Text: "go developer"})

	if q.Get("q") != "go developer" {
		t.Fatalf("unexpected text param: %q", q.Get("q"))
	}
	if _, ok := q["period"]; ok {
		t.Fatalf("zero period must be omitted: %v", q)
	}
	if _, ok := q["location"]; ok {
		t.Fatalf("empty location must be omitted: %v", q)
	}
}
