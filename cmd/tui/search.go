package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robert-malhotra/go-reddit-search/cmd/tui/formatting"
	"github.com/robert-malhotra/go-reddit-search/pkg/client"
	"github.com/robert-malhotra/go-reddit-search/pkg/search"
)

const (
	pageSize      = 25
	searchTimeout = 30 * time.Second
)

// compilePreview parses and compiles a text predicate. Blank input yields an
// empty query and no error.
func compilePreview(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	expr, err := search.ParseText(text)
	if err != nil {
		return "", err
	}
	return search.Compile(expr)
}

// startSearch resets the result list and fetches the first page of query.
// It must run on the UI goroutine.
func (t *TUI) startSearch(query string) {
	if t.searchCancel != nil {
		t.searchCancel()
	}
	t.generation++
	t.query = query
	t.after = ""
	t.exhausted = false
	t.posts = nil
	t.resultList.Clear()
	t.summary.Clear()

	t.loadingMu.Lock()
	t.loading = false
	t.loadingMu.Unlock()

	t.loadNextPage()
	t.app.SetFocus(t.resultList)
}

// loadNextPage fetches the page after the current cursor in the background.
// It must run on the UI goroutine.
func (t *TUI) loadNextPage() {
	if t.query == "" || t.exhausted {
		return
	}
	t.loadingMu.Lock()
	if t.loading {
		t.loadingMu.Unlock()
		return
	}
	t.loading = true
	t.loadingMu.Unlock()

	ctx, cancel := context.WithTimeout(t.baseCtx, searchTimeout)
	t.searchCancel = cancel
	gen, query, after, params := t.generation, t.query, t.after, t.params
	t.resultList.SetTitle(t.resultsTitle(true))

	go func() {
		defer cancel()
		page, err := t.client.SearchPage(ctx, query, params, after)

		t.app.QueueUpdateDraw(func() {
			if gen != t.generation {
				return
			}
			t.loadingMu.Lock()
			t.loading = false
			t.loadingMu.Unlock()

			if err != nil {
				t.resultList.SetTitle(t.resultsTitle(false))
				if !errors.Is(err, context.Canceled) {
					t.showError(fmt.Sprintf("Search failed: %v", err))
				}
				return
			}
			t.appendPage(page)
		})
	}()
}

func (t *TUI) appendPage(page *client.Page) {
	// A repeated cursor would loop forever.
	t.exhausted = page.After == "" || page.After == t.after || len(page.Posts) == 0
	t.after = page.After

	t.appending = true
	if n := t.resultList.GetItemCount(); n > 0 {
		if text, _ := t.resultList.GetItemText(n - 1); text == loadMoreText {
			t.resultList.RemoveItem(n - 1)
		}
	}
	for _, p := range page.Posts {
		t.posts = append(t.posts, p)
		t.resultList.AddItem(formatting.FormatPostListItem(p), "", 0, nil)
	}
	if !t.exhausted {
		t.resultList.AddItem(loadMoreText, "", 0, nil)
	}
	t.appending = false
	t.resultList.SetTitle(t.resultsTitle(false))

	if len(t.posts) == 0 {
		t.summary.SetText("[gray]No posts matched.[white]")
	} else if i := t.resultList.GetCurrentItem(); i < len(t.posts) {
		t.summary.SetText(formatting.FormatPostSummary(t.posts[i]))
	}
}
