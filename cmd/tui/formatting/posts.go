package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"

	"github.com/robert-malhotra/go-reddit-search/pkg/client"
)

const maxSelfTextPreview = 400

// FormatPreview shows the compiled query, or the reason it failed.
func FormatPreview(query string, err error) string {
	switch {
	case err != nil:
		return "[red]" + tview.Escape(err.Error()) + "[white]"
	case query == "":
		return "[gray]Type a predicate, e.g. (self or nsfw) and not author = \"spez\"[white]"
	default:
		return "[green]" + tview.Escape(query) + "[white]\n[gray]q=" + tview.Escape(client.EncodeQuery(query)) + "[white]"
	}
}

func FormatPostListItem(p *client.Post) string {
	return fmt.Sprintf("%6s  %s", humanize(p.Score), tview.Escape(p.Title))
}

func FormatPostSummary(p *client.Post) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow]%s[white]\n\n", tview.Escape(p.Title))
	writeField(&b, "Subreddit", "r/"+p.Subreddit)
	writeField(&b, "Author", "u/"+p.Author)
	writeField(&b, "Score", humanize(p.Score))
	writeField(&b, "Comments", humanize(p.NumComments))
	writeField(&b, "Posted", p.Created().Format(time.RFC3339))
	if p.LinkFlairText != "" {
		writeField(&b, "Flair", p.LinkFlairText)
	}
	var tags []string
	if p.IsSelf {
		tags = append(tags, "self")
	}
	if p.Over18 {
		tags = append(tags, "nsfw")
	}
	if len(tags) > 0 {
		writeField(&b, "Tags", strings.Join(tags, ", "))
	}
	return b.String()
}

func FormatPostDetail(p *client.Post) string {
	var b strings.Builder
	b.WriteString(FormatPostSummary(p))
	if !p.IsSelf && p.URL != "" {
		writeField(&b, "Link", p.URL)
	}
	if p.Permalink != "" {
		writeField(&b, "Permalink", "https://www.reddit.com"+p.Permalink)
	}
	if text := strings.TrimSpace(p.SelfText); text != "" {
		b.WriteString("\n")
		b.WriteString(tview.Escape(truncate(text, maxSelfTextPreview)))
		b.WriteString("\n")
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "[green]%s:[white] %s\n", label, tview.Escape(value))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
