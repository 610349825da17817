package client

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/robert-malhotra/go-reddit-search/pkg/search"
)

// Sort orders search results.
type Sort string

const (
	SortRelevance Sort = "relevance"
	SortHot       Sort = "hot"
	SortTop       Sort = "top"
	SortNew       Sort = "new"
	SortComments  Sort = "comments"
)

// TimeRange restricts results to a recent window.
type TimeRange string

const (
	TimeHour  TimeRange = "hour"
	TimeDay   TimeRange = "day"
	TimeWeek  TimeRange = "week"
	TimeMonth TimeRange = "month"
	TimeYear  TimeRange = "year"
	TimeAll   TimeRange = "all"
)

// MaxPageSize is the largest page the search endpoint returns.
const MaxPageSize = 100

// subredditPattern accepts a community name or a '+'-joined multireddit.
// Dot segments are excluded so the path cannot escape r/{name}.
var subredditPattern = regexp.MustCompile(`^[A-Za-z0-9_]{2,21}(\+[A-Za-z0-9_]{2,21})*$`)

// SearchParams holds request parameters other than the query itself.
type SearchParams struct {
	// Subreddit restricts the search to one community when set.
	Subreddit   string
	Sort        Sort
	Time        TimeRange
	Limit       int
	IncludeNSFW bool
}

func (p SearchParams) validate() error {
	switch p.Sort {
	case "", SortRelevance, SortHot, SortTop, SortNew, SortComments:
	default:
		return fmt.Errorf("client: unsupported sort %q", p.Sort)
	}
	switch p.Time {
	case "", TimeHour, TimeDay, TimeWeek, TimeMonth, TimeYear, TimeAll:
	default:
		return fmt.Errorf("client: unsupported time range %q", p.Time)
	}
	if p.Limit < 0 || p.Limit > MaxPageSize {
		return fmt.Errorf("client: limit must be between 0 and %d", MaxPageSize)
	}
	if p.Subreddit != "" && !subredditPattern.MatchString(p.Subreddit) {
		return fmt.Errorf("client: invalid subreddit %q", p.Subreddit)
	}
	return nil
}

func (p SearchParams) values(after string) url.Values {
	v := url.Values{}
	v.Set("raw_json", "1")
	if p.Subreddit != "" {
		v.Set("restrict_sr", "on")
	}
	if p.Sort != "" {
		v.Set("sort", string(p.Sort))
	}
	if p.Time != "" {
		v.Set("t", string(p.Time))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.IncludeNSFW {
		v.Set("include_over_18", "on")
	}
	if after != "" {
		v.Set("after", after)
	}
	return v
}

// EncodeQuery escapes a compiled query for the q parameter. The grammar's '+'
// separators stay literal so the backend decodes them as spaces.
func EncodeQuery(query string) string {
	parts := strings.Split(query, "+")
	for i, part := range parts {
		parts[i] = url.QueryEscape(part)
	}
	return strings.Join(parts, "+")
}

// SearchURL returns the request URL for one page of results.
func (c *Client) SearchURL(query string, params SearchParams, after string) *url.URL {
	var u *url.URL
	if params.Subreddit != "" {
		u = c.baseURL.JoinPath("r", params.Subreddit, "search.json")
	} else {
		u = c.baseURL.JoinPath("search.json")
	}
	u.RawQuery = params.values(after).Encode() + "&q=" + EncodeQuery(query)
	return u
}

// Search compiles expr and streams every matching post, following the
// after cursor until the listing is exhausted or the consumer stops.
func (c *Client) Search(ctx context.Context, expr search.Node, params SearchParams) iter.Seq2[*Post, error] {
	query, err := c.compiler.Compile(expr)
	if err != nil {
		return func(yield func(*Post, error) bool) {
			yield(nil, err)
		}
	}
	return c.SearchQuery(ctx, query, params)
}

// SearchQuery is Search for an already compiled query string.
func (c *Client) SearchQuery(ctx context.Context, query string, params SearchParams) iter.Seq2[*Post, error] {
	return func(yield func(*Post, error) bool) {
		seen := make(map[string]bool)
		after := ""
		for {
			page, err := c.SearchPage(ctx, query, params, after)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, p := range page.Posts {
				if !yield(p, nil) {
					return
				}
			}
			if page.After == "" || seen[page.After] {
				return
			}
			seen[page.After] = true
			after = page.After
		}
	}
}

// SearchPage fetches a single page of results starting after the given fullname.
func (c *Client) SearchPage(ctx context.Context, query string, params SearchParams, after string) (*Page, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "reddit.search", trace.WithAttributes(
		attribute.String("reddit.query", query),
		attribute.String("reddit.subreddit", params.Subreddit),
		attribute.String("reddit.after", after),
	))
	defer span.End()

	u := c.SearchURL(query, params, after)
	data, err := c.fetch(ctx, u.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	page, err := decodeListing(data)
	if err != nil {
		err = fmt.Errorf("error decoding response from %s: %w", u, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("reddit.results", len(page.Posts)))
	return page, nil
}

// Collect drains seq into a slice, stopping after max values when max > 0.
func Collect[T any](seq iter.Seq2[*T, error], max int) ([]*T, error) {
	var (
		out     []*T
		iterErr error
	)
	for v, err := range seq {
		if err != nil {
			iterErr = err
			break
		}
		out = append(out, v)
		if max > 0 && len(out) >= max {
			break
		}
	}
	if iterErr != nil {
		return nil, iterErr
	}
	return out, nil
}
