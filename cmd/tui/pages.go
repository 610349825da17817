package main

import (
	"github.com/rivo/tview"

	"github.com/robert-malhotra/go-reddit-search/cmd/tui/formatting"
)

const (
	searchPageID = "search"
	detailPageID = "postDetail"
	loadMoreText = "Load more"
)

const resultsHelpControls = "[yellow]↑/↓[white] select  [yellow]Enter[white] view post  [yellow]j[white] raw JSON  [yellow]Tab[white] toggle focus  [yellow]Esc[white] edit query  [yellow]Ctrl+C[white] quit"

func (t *TUI) setupPages() {
	t.setupSearchPage()
	t.setupDetailPage()
}

func (t *TUI) setupSearchPage() {
	t.input = tview.NewInputField().
		SetLabel("Predicate: ").
		SetFieldWidth(0).
		SetPlaceholder(`self and not author = "AutoModerator"`)
	t.input.SetBorder(true).SetTitle("Search")
	t.input.SetChangedFunc(t.onInputChanged)
	t.input.SetDoneFunc(t.onInputDone)

	t.preview = tview.NewTextView().SetDynamicColors(true).SetWordWrap(true)
	t.preview.SetBorder(true).SetTitle("Compiled Query")
	t.preview.SetText(formatting.FormatPreview("", nil))

	t.resultList = tview.NewList()
	t.resultList.SetBorder(true).SetTitle(t.resultsTitle(false))
	t.resultList.ShowSecondaryText(false)
	t.resultList.SetWrapAround(false)
	t.resultList.SetChangedFunc(t.onResultChanged)
	t.resultList.SetSelectedFunc(t.onResultSelected)

	t.summary = tview.NewTextView().SetDynamicColors(true).SetWordWrap(true)
	t.summary.SetBorder(true).SetTitle("Post Summary")

	results := tview.NewFlex().
		AddItem(t.resultList, 0, 1, false).
		AddItem(t.summary, 0, 1, false)

	t.resultHelp = formatting.MakeHelpText("[yellow]Enter[white] search  [yellow]Tab[white] results  [yellow]Ctrl+C[white] quit")

	page := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.input, 3, 0, true).
		AddItem(t.preview, 4, 0, false).
		AddItem(results, 0, 1, false).
		AddItem(t.resultHelp, 3, 0, false)

	t.pages.AddPage(searchPageID, page, true, true)
}

func (t *TUI) setupDetailPage() {
	t.postDetail = tview.NewTextView().SetDynamicColors(true).SetWordWrap(true).SetScrollable(true)
	t.postDetail.SetBorder(true).SetTitle("Post")

	help := formatting.MakeHelpText("[yellow]↑/↓[white] scroll  [yellow]j[white] raw JSON  [yellow]Esc[white] back  [yellow]Ctrl+C[white] quit")
	page := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.postDetail, 0, 1, true).
		AddItem(help, 3, 0, false)

	t.pages.AddPage(detailPageID, page, true, false)
}

func (t *TUI) resultsTitle(loading bool) string {
	title := "Results"
	if len(t.posts) > 0 {
		title = formatting.CountTitle(title, len(t.posts), !t.exhausted)
	}
	if loading {
		title += " (loading...)"
	}
	return title
}

func (t *TUI) showPostDetail(index int) {
	if index < 0 || index >= len(t.posts) {
		return
	}
	t.currentPost = t.posts[index]
	t.postDetail.SetText(formatting.FormatPostDetail(t.currentPost))
	t.postDetail.ScrollToBeginning()
	t.pages.SwitchToPage(detailPageID)
	t.app.SetFocus(t.postDetail)
}

func (t *TUI) showError(message string) {
	t.showModal("error", message)
}

func (t *TUI) showInfo(message string) {
	t.showModal("info", message)
}

func (t *TUI) showModal(id, message string) {
	t.app.QueueUpdateDraw(func() {
		focus := t.app.GetFocus()
		modal := tview.NewModal().
			SetText(message).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				t.pages.HidePage(id)
				t.pages.RemovePage(id)
				if focus != nil {
					t.app.SetFocus(focus)
				}
			})
		t.pages.RemovePage(id)
		t.pages.AddPage(id, modal, false, true)
		t.pages.ShowPage(id)
	})
}
