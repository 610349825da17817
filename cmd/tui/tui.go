package main

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/robert-malhotra/go-reddit-search/pkg/client"
)

type TUI struct {
	app        *tview.Application
	pages      *tview.Pages
	input      *tview.InputField
	preview    *tview.TextView
	resultList *tview.List
	summary    *tview.TextView
	resultHelp *tview.TextView
	postDetail *tview.TextView

	client *client.Client
	params client.SearchParams

	// Owned by the UI goroutine.
	posts       []*client.Post
	query       string
	after       string
	exhausted   bool
	appending   bool
	generation  int
	currentPost *client.Post

	loadingMu sync.Mutex
	loading   bool

	searchCancel context.CancelFunc

	baseCtx    context.Context
	baseCancel context.CancelFunc
	stopOnce   sync.Once

	jsonViewer *jsonViewer
}

// configureStyles sets the tview global styles for the TUI.
// Note: This modifies global state in tview.Styles.
func configureStyles() {
	tview.Styles.PrimitiveBackgroundColor = tcell.ColorBlack
	tview.Styles.ContrastBackgroundColor = tcell.ColorDarkSlateGray
	tview.Styles.MoreContrastBackgroundColor = tcell.ColorOrangeRed
	tview.Styles.BorderColor = tcell.ColorWhite
	tview.Styles.TitleColor = tcell.ColorWhite
	tview.Styles.GraphicsColor = tcell.ColorWhite
	tview.Styles.PrimaryTextColor = tcell.ColorWhite
	tview.Styles.SecondaryTextColor = tcell.ColorYellow
	tview.Styles.TertiaryTextColor = tcell.ColorGreen
	tview.Styles.InverseTextColor = tcell.ColorBlue
	tview.Styles.ContrastSecondaryTextColor = tcell.ColorNavy
}

// NewTUI creates a new TUI instance. The provided context controls the
// lifetime of background searches; pass nil to use context.Background().
func NewTUI(ctx context.Context, c *client.Client) *TUI {
	if ctx == nil {
		ctx = context.Background()
	}
	baseCtx, baseCancel := context.WithCancel(ctx)

	configureStyles()

	tui := &TUI{
		app:        tview.NewApplication(),
		pages:      tview.NewPages(),
		client:     c,
		params:     client.SearchParams{Limit: pageSize},
		baseCtx:    baseCtx,
		baseCancel: baseCancel,
	}

	tui.setupPages()
	tui.jsonViewer = newJSONViewer(tui)

	tui.app.SetInputCapture(tui.onInputCapture)
	tui.app.SetFocus(tui.input)

	return tui
}

// Run starts the TUI event loop. It blocks until the application exits
// and returns any error that occurred.
func (t *TUI) Run() error {
	return t.app.SetRoot(t.pages, true).Run()
}

func (t *TUI) Stop() {
	t.stopOnce.Do(func() {
		if t.baseCancel != nil {
			t.baseCancel()
		}
		t.app.Stop()
	})
}
