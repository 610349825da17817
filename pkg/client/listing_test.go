package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeListing(t *testing.T) {
	data := []byte(`{
		"kind": "Listing",
		"data": {
			"after": "t3_abc",
			"before": null,
			"children": [
				{"kind": "t3", "data": {
					"id": "abc", "name": "t3_abc", "title": "Go 1.24 released",
					"author": "gopher", "subreddit": "golang", "selftext": "",
					"url": "https://go.dev/blog", "permalink": "/r/golang/comments/abc/",
					"domain": "go.dev", "link_flair_text": "news", "score": 512,
					"num_comments": 64, "over_18": false, "is_self": false,
					"created_utc": 1700000000.5
				}},
				{"kind": "t5", "data": {"id": "sub"}}
			]
		}
	}`)

	page, err := decodeListing(data)
	require.NoError(t, err)
	assert.Equal(t, "t3_abc", page.After)
	assert.Empty(t, page.Before)
	require.Len(t, page.Posts, 1)

	p := page.Posts[0]
	assert.Equal(t, "Go 1.24 released", p.Title)
	assert.Equal(t, "news", p.LinkFlairText)
	assert.Equal(t, 512, p.Score)
	assert.Equal(t, 64, p.NumComments)
	assert.Equal(t, time.Unix(1700000000, 500000000).UTC(), p.Created())
}

func TestDecodeListing_Errors(t *testing.T) {
	_, err := decodeListing([]byte(`not json`))
	assert.Error(t, err)

	_, err = decodeListing([]byte(`{"kind":"more"}`))
	assert.ErrorContains(t, err, "unexpected response kind")

	_, err = decodeListing([]byte(`{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"score":"high"}}]}}`))
	assert.ErrorContains(t, err, "decode child 0")
}

func TestNewAPIError(t *testing.T) {
	e := newAPIError(429, []byte(`{"message": "Too Many Requests", "error": 429}`))
	assert.Equal(t, 429, e.Status)
	assert.Equal(t, "Too Many Requests", e.Message)
	assert.True(t, e.Temporary())
	assert.Equal(t, "client: Too Many Requests (status 429)", e.Error())

	e = newAPIError(502, []byte("<html>bad gateway</html>"))
	assert.Equal(t, "<html>bad gateway</html>", e.Message)
	assert.True(t, e.Temporary())

	e = newAPIError(404, nil)
	assert.Equal(t, "client: Not Found (status 404)", e.Error())
	assert.False(t, e.Temporary())

	var nilErr *APIError
	assert.Equal(t, "<nil>", nilErr.Error())
}
