package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-reddit-search/pkg/search"
)

func newFieldsCommand() *cli.Command {
	return &cli.Command{
		Name:   "fields",
		Usage:  "List the fields a predicate may reference",
		Action: fieldsAction,
	}
}

func fieldsAction(_ context.Context, cmd *cli.Command) error {
	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tQUERY\tTYPE")
	for _, f := range search.RedditSchema().Fields() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.QueryName, f.Kind)
	}
	return tw.Flush()
}
