package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/robert-malhotra/go-reddit-search/cmd/tui/formatting"
)

func (t *TUI) onInputChanged(text string) {
	query, err := compilePreview(text)
	t.preview.SetText(formatting.FormatPreview(query, err))
}

func (t *TUI) onInputDone(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	query, err := compilePreview(t.input.GetText())
	if err != nil {
		t.showError(err.Error())
		return
	}
	if query == "" {
		return
	}
	t.startSearch(query)
}

func (t *TUI) onResultChanged(index int, mainText, secondaryText string, shortcut rune) {
	if t.appending {
		return
	}
	if index < len(t.posts) {
		t.summary.SetText(formatting.FormatPostSummary(t.posts[index]))
		t.summary.ScrollToBeginning()
	} else {
		t.summary.Clear()
	}

	// Fetch the next page when the cursor nears the end of the list.
	if mainText == loadMoreText || (len(t.posts) > 0 && index >= len(t.posts)-2) {
		t.loadNextPage()
	}
}

func (t *TUI) onResultSelected(index int, mainText, secondaryText string, shortcut rune) {
	if mainText == loadMoreText {
		t.loadNextPage()
		return
	}
	t.showPostDetail(index)
}

func (t *TUI) onInputCapture(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyCtrlC {
		t.Stop()
		return nil
	}

	currentPage, _ := t.pages.GetFrontPage()
	if currentPage == jsonPageID {
		return event
	}
	inputFocused := t.app.GetFocus() == t.input

	if event.Key() == tcell.KeyRune && !inputFocused {
		if r := event.Rune(); r == 'j' || r == 'J' {
			switch currentPage {
			case searchPageID:
				if index := t.resultList.GetCurrentItem(); index >= 0 && index < len(t.posts) {
					post := t.posts[index]
					t.showJSON(fmt.Sprintf("Post %s", post.ID), post)
				}
				return nil
			case detailPageID:
				if t.currentPost != nil {
					t.showJSON(fmt.Sprintf("Post %s", t.currentPost.ID), t.currentPost)
				}
				return nil
			}
		}
	}

	switch event.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		if currentPage == searchPageID {
			if inputFocused {
				t.app.SetFocus(t.resultList)
			} else {
				t.app.SetFocus(t.input)
			}
			return nil
		}
	case tcell.KeyEscape:
		switch currentPage {
		case detailPageID:
			t.pages.SwitchToPage(searchPageID)
			t.app.SetFocus(t.resultList)
			return nil
		case searchPageID:
			t.app.SetFocus(t.input)
			return nil
		}
	}

	return event
}
