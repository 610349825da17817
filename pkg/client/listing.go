package client

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Post is a link or self post returned by search.
type Post struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Subreddit     string  `json:"subreddit"`
	SelfText      string  `json:"selftext"`
	URL           string  `json:"url"`
	Permalink     string  `json:"permalink"`
	Domain        string  `json:"domain"`
	LinkFlairText string  `json:"link_flair_text"`
	Score         int     `json:"score"`
	NumComments   int     `json:"num_comments"`
	Over18        bool    `json:"over_18"`
	IsSelf        bool    `json:"is_self"`
	CreatedUTC    float64 `json:"created_utc"`
}

// Created returns the post creation time in UTC.
func (p *Post) Created() time.Time {
	sec, frac := math.Modf(p.CreatedUTC)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}

// Page is one page of search results.
type Page struct {
	Posts  []*Post
	After  string
	Before string
}

const postKind = "t3"

type listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string `json:"after"`
		Before   string `json:"before"`
		Children []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// decodeListing parses a Listing envelope, keeping only t3 (post) children.
func decodeListing(data []byte) (*Page, error) {
	var l listing
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	if l.Kind != "Listing" {
		return nil, fmt.Errorf("unexpected response kind %q", l.Kind)
	}

	page := &Page{After: l.Data.After, Before: l.Data.Before}
	for i, child := range l.Data.Children {
		if child.Kind != postKind {
			continue
		}
		var p Post
		if err := json.Unmarshal(child.Data, &p); err != nil {
			return nil, fmt.Errorf("decode child %d: %w", i, err)
		}
		page.Posts = append(page.Posts, &p)
	}
	return page, nil
}
