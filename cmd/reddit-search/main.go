package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-reddit-search/internal/config"
	"github.com/robert-malhotra/go-reddit-search/pkg/client"
	"github.com/robert-malhotra/go-reddit-search/pkg/search"
)

const (
	configFlag    = "config"
	baseURLFlag   = "url"
	timeoutFlag   = "timeout"
	tokenFlag     = "token"
	userAgentFlag = "user-agent"
	logLevelFlag  = "log-level"
)

// globalFlags returns fresh flag values for each command tree.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    configFlag,
			Aliases: []string{"c"},
			Usage:   "path to a YAML config file (default ./reddit-search.yaml)",
		},
		&cli.StringFlag{
			Name:    baseURLFlag,
			Aliases: []string{"u"},
			Usage:   "search API base URL",
		},
		&cli.DurationFlag{
			Name:    timeoutFlag,
			Aliases: []string{"t"},
			Usage:   "HTTP client timeout (e.g. 30s, 1m)",
		},
		&cli.StringFlag{
			Name:    tokenFlag,
			Usage:   "OAuth bearer token",
			Sources: cli.EnvVars("REDDIT_TOKEN"),
		},
		&cli.StringFlag{
			Name:  userAgentFlag,
			Usage: "User-Agent header sent with every request",
		},
		&cli.StringFlag{
			Name:  logLevelFlag,
			Usage: "debug, info, warn or error",
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "reddit-search",
		Usage: "Compile predicates into Reddit search queries and run them",
		Flags: globalFlags(),
		Commands: []*cli.Command{
			newCompileCommand(),
			newSearchCommand(),
			newFieldsCommand(),
		},
	}
}

// loadConfig layers the global flags that were set on top of file and env settings.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	overrides := map[string]any{}
	if cmd.IsSet(baseURLFlag) {
		overrides["base_url"] = cmd.String(baseURLFlag)
	}
	if cmd.IsSet(timeoutFlag) {
		overrides["timeout"] = cmd.Duration(timeoutFlag)
	}
	if cmd.IsSet(tokenFlag) {
		overrides["token"] = cmd.String(tokenFlag)
	}
	if cmd.IsSet(userAgentFlag) {
		overrides["user_agent"] = cmd.String(userAgentFlag)
	}
	if cmd.IsSet(logLevelFlag) {
		overrides["log.level"] = cmd.String(logLevelFlag)
	}
	return config.Load(cmd.String(configFlag), overrides)
}

func newClientFromCommand(cmd *cli.Command) (*client.Client, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := config.NewLogger(cmd.Root().ErrWriter, cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	opts, closeFn, err := cfg.ClientOptions(logger)
	if err != nil {
		return nil, nil, err
	}
	c, err := client.NewClient(opts...)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return c, closeFn, nil
}

// predicateArg parses the positional arguments as one text predicate, so
// quoting the whole expression is optional.
func predicateArg(cmd *cli.Command) (search.Node, error) {
	if cmd.Args().Len() == 0 {
		return nil, fmt.Errorf("expected a predicate, e.g. 'self and author = \"spez\"'")
	}
	return search.ParseText(strings.Join(cmd.Args().Slice(), " "))
}

