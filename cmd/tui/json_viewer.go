package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/robert-malhotra/go-reddit-search/cmd/tui/formatting"
)

const jsonPageID = "jsonView"

// jsonViewer shows the raw JSON of a post on a transient page and remembers
// where to return when it closes. All methods run on the UI goroutine.
type jsonViewer struct {
	tui       *TUI
	prevPage  string
	prevFocus tview.Primitive
	title     string
	data      []byte
}

func newJSONViewer(t *TUI) *jsonViewer {
	return &jsonViewer{tui: t}
}

func (v *jsonViewer) Show(title string, value any) {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		v.tui.showError(fmt.Sprintf("Failed to render JSON: %v", err))
		return
	}
	v.prevFocus = v.tui.app.GetFocus()
	v.prevPage, _ = v.tui.pages.GetFrontPage()
	v.title = title
	v.data = encoded

	view := tview.NewTextView().
		SetDynamicColors(false).
		SetScrollable(true).
		SetWordWrap(false).
		SetText(string(encoded))
	view.SetBorder(true).SetTitle(title)
	view.SetInputCapture(v.handleInput)

	help := formatting.MakeHelpText("[yellow]Esc[white] close  |  [yellow]s[white] save JSON  |  [yellow]Ctrl+C[white] quit")
	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(view, 0, 1, true).
		AddItem(help, 3, 0, false)

	v.tui.pages.RemovePage(jsonPageID)
	v.tui.pages.AddPage(jsonPageID, layout, true, true)
	v.tui.app.SetFocus(view)
}

func (v *jsonViewer) Close() {
	v.tui.pages.RemovePage(jsonPageID)
	if v.prevPage != "" {
		v.tui.pages.SwitchToPage(v.prevPage)
	}
	if v.prevFocus != nil {
		v.tui.app.SetFocus(v.prevFocus)
	}
	v.prevPage, v.prevFocus, v.title, v.data = "", nil, "", nil
}

func (v *jsonViewer) Save() {
	if len(v.data) == 0 {
		return
	}
	filename := formatting.GenerateJSONFilename(v.title)
	if err := os.WriteFile(filename, v.data, 0o644); err != nil {
		v.tui.showError(fmt.Sprintf("Failed to save JSON: %v", err))
		return
	}
	v.tui.showInfo(fmt.Sprintf("JSON saved to %s", filename))
}

func (v *jsonViewer) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlC:
		v.tui.Stop()
		return nil
	case tcell.KeyEscape:
		v.Close()
		return nil
	case tcell.KeyRune:
		if r := event.Rune(); r == 's' || r == 'S' {
			v.Save()
			return nil
		}
	}
	return event
}

func (t *TUI) showJSON(title string, value any) {
	if t.jsonViewer == nil {
		t.showError("JSON viewer not initialized")
		return
	}
	t.jsonViewer.Show(title, value)
}
