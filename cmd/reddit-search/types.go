package main

import (
	"strings"
	"time"

	"github.com/robert-malhotra/go-reddit-search/pkg/client"
)

const permalinkBase = "https://www.reddit.com"

type postSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Subreddit string    `json:"subreddit"`
	Flair     string    `json:"flair,omitempty"`
	Score     int       `json:"score"`
	Comments  int       `json:"comments"`
	NSFW      bool      `json:"nsfw"`
	Self      bool      `json:"self"`
	Created   time.Time `json:"created"`
	URL       string    `json:"url,omitempty"`
	Permalink string    `json:"permalink"`
}

func newPostSummary(p *client.Post) *postSummary {
	s := &postSummary{
		ID:        p.ID,
		Title:     p.Title,
		Author:    p.Author,
		Subreddit: p.Subreddit,
		Flair:     p.LinkFlairText,
		Score:     p.Score,
		Comments:  p.NumComments,
		NSFW:      p.Over18,
		Self:      p.IsSelf,
		Created:   p.Created(),
		Permalink: p.Permalink,
	}
	if strings.HasPrefix(p.Permalink, "/") {
		s.Permalink = permalinkBase + p.Permalink
	}
	// Self posts link back to themselves.
	if !p.IsSelf {
		s.URL = p.URL
	}
	return s
}
