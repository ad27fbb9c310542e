package jobs

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	searchPath = "/jobs/search"

	// Upper bound on postings fetched for one request regardless of what
	// the interpreted intent asks for.
	MaxPostings = 10
)

// SearchQuery carries the interpreted search intent in the shape the
// job-board API expects.
type SearchQuery struct {
	Text string `jobparam:"q"`
	// jobparam is a custom tag for reflect. Please see buildParams.
	Location string   `jobparam:"location"`
	Skills   []string `jobparam:"skill"`
	Period   int      `jobparam:"period"`
	Limit    int      `jobparam:"limit"`
	PerPage  string   `jobparam:"per_page"`
}

func (c *Client) Search(ctx context.Context, query *SearchQuery) (*Postings, error) {
	var postings []*Posting

	// Set per_page max as possible. It should be faster.
	if query.PerPage == "" {
		query.PerPage = perPage
	}

	if query.Limit <= 0 || query.Limit > MaxPostings {
		query.Limit = MaxPostings
	}

	q := buildParams(query)
	apiURLSearch := fmt.Sprintf("%s%s", c.APIURL, searchPath)

	items, err := c.GetItems(ctx, apiURLSearch, q)
	if err != nil {
		return nil, err
	}

	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &postings,
		TagName:  "json",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode postings: %w", err)
	}

	if len(postings) > query.Limit {
		postings = postings[:query.Limit]
	}

	for _, posting := range postings {
		posting.Description = c.cleanDescription(posting.Description)
	}

	return &Postings{
		Items: postings,
	}, nil
}

// cleanDescription converts HTML descriptions to markdown so prompts carry
// readable text instead of markup.
func (c *Client) cleanDescription(description string) string {
	if !strings.Contains(description, "<") {
		return strings.TrimSpace(description)
	}

	markdown, err := c.converter.ConvertString(description)
	if err != nil {
		return strings.TrimSpace(description)
	}

	return strings.TrimSpace(markdown)
}

func buildParams(query *SearchQuery) url.Values {
	q := url.Values{}
	fields := reflect.VisibleFields(reflect.TypeOf(*query))
	for _, field := range fields {
		key := field.Tag.Get("jobparam")
		if key == "" {
			continue
		}
		kind := field.Type.Kind()
		switch kind {
		case reflect.Slice:
			s := reflect.ValueOf(query).Elem().Field(field.Index[0]).Interface()
			switch v := s.(type) {
			case []int:
				for _, value := range v {
					q.Add(key, strconv.Itoa(value))
				}

			case []string:
				for _, value := range v {
					q.Add(key, value)
				}
			}

		default:
			value := fmt.Sprintf("%v", reflect.ValueOf(query).Elem().Field(field.Index[0]).Interface())
			if value != "" && value != "0" {
				q.Set(key, value)
			}
		}
	}

	return q
}
