package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-reddit-search/pkg/client"
	"github.com/robert-malhotra/go-reddit-search/pkg/search"
)

func newCompileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "Print the search query for a predicate",
		ArgsUsage: "<predicate>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "encoded",
				Aliases: []string{"e"},
				Usage:   "Print the query escaped for a URL",
			},
			&cli.BoolFlag{
				Name:  "explain",
				Usage: "Print the parsed predicate before the query",
			},
		},
		Action: compileAction,
	}
}

func compileAction(_ context.Context, cmd *cli.Command) error {
	expr, err := predicateArg(cmd)
	if err != nil {
		return err
	}
	query, err := search.Compile(expr)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if cmd.Bool("explain") {
		fmt.Fprintf(w, "predicate: %s\n", search.Format(expr))
	}
	if cmd.Bool("encoded") {
		query = client.EncodeQuery(query)
	}
	_, err = fmt.Fprintln(w, query)
	return err
}
