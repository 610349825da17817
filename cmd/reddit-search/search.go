package main

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-reddit-search/pkg/client"
	"github.com/robert-malhotra/go-reddit-search/pkg/search"
)

func newSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run a predicate against Reddit search",
		ArgsUsage: "<predicate>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "subreddit",
				Aliases: []string{"r"},
				Usage:   "Restrict results to one subreddit",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "relevance, hot, top, new or comments",
			},
			&cli.StringFlag{
				Name:  "time",
				Usage: "hour, day, week, month, year or all",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Page size (1-100)",
				Value: 25,
			},
			&cli.IntFlag{
				Name:    "max",
				Aliases: []string{"n"},
				Usage:   "Stop after this many posts (0 for all)",
				Value:   100,
			},
			&cli.BoolFlag{
				Name:  "nsfw",
				Usage: "Include NSFW results",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Prompt between batches of results",
			},
		},
		Action: searchAction,
	}
}

func searchAction(ctx context.Context, cmd *cli.Command) error {
	expr, err := predicateArg(cmd)
	if err != nil {
		return err
	}
	if _, err := search.Compile(expr); err != nil {
		return err
	}
	if cmd.Int("max") < 0 {
		return fmt.Errorf("--max cannot be negative")
	}

	c, closeFn, err := newClientFromCommand(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	params := client.SearchParams{
		Subreddit:   cmd.String("subreddit"),
		Sort:        client.Sort(cmd.String("sort")),
		Time:        client.TimeRange(cmd.String("time")),
		Limit:       int(cmd.Int("limit")),
		IncludeNSFW: cmd.Bool("nsfw"),
	}
	seq := take(c.Search(ctx, expr, params), int(cmd.Int("max")))
	marshal := func(p *client.Post) ([]byte, error) {
		return json.MarshalIndent(newPostSummary(p), "", "  ")
	}

	root := cmd.Root()
	if cmd.Bool("interactive") {
		return printJSONArrayInteractive(root.Writer, root.ErrWriter, root.Reader, seq, marshal)
	}

	entries, err := collectForCLI(seq, marshal)
	if err != nil {
		return err
	}
	return printJSONArray(root.Writer, entries)
}

// take stops seq after n values; n <= 0 means no limit.
func take[T any](seq iter.Seq2[*T, error], n int) iter.Seq2[*T, error] {
	if n <= 0 {
		return seq
	}
	return func(yield func(*T, error) bool) {
		count := 0
		for v, err := range seq {
			if !yield(v, err) || err != nil {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	}
}
