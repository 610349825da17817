// Package formatting renders posts and queries as tview color-tagged text.
package formatting

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rivo/tview"
)

func MakeHelpText(text string) *tview.TextView {
	view := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetTextAlign(tview.AlignCenter).
		SetText(text)
	view.SetBorder(true).SetTitle("Controls")
	return view
}

// CountTitle appends a result count to title; more adds a "+" suffix.
func CountTitle(title string, n int, more bool) string {
	suffix := ""
	if more {
		suffix = "+"
	}
	return fmt.Sprintf("%s (%d%s)", title, n, suffix)
}

func Slugify(input string) string {
	var builder strings.Builder
	for _, r := range input {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			builder.WriteRune(unicode.ToLower(r))
		case r == '-', r == '_':
			builder.WriteRune(r)
		case unicode.IsSpace(r):
			builder.WriteRune('-')
		}
	}
	return strings.Trim(builder.String(), "-_")
}

func GenerateJSONFilename(title string) string {
	return generateJSONFilename(title, time.Now())
}

func generateJSONFilename(title string, now time.Time) string {
	slug := Slugify(title)
	if slug == "" {
		slug = "post"
	}
	return fmt.Sprintf("%s_%s.json", slug, now.Format("20060102_150405"))
}

// humanize renders large counts as 1.2k or 3.4m.
func humanize(n int) string {
	switch {
	case n >= 1_000_000 || n <= -1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1e6)) + "m"
	case n >= 1_000 || n <= -1_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1e3)) + "k"
	default:
		return fmt.Sprint(n)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
