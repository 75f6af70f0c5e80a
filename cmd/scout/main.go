// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/scout"
	"github.com/poiesic/scout/ai/openai"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/importer"
	"github.com/poiesic/scout/logic"
	"github.com/poiesic/scout/session"
	"github.com/urfave/cli/v2"
)

// newProvider builds the parsers commands run with.
var newProvider = openai.NewProvider

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:                      "scout",
		Usage:                     "Creator discovery and post ranking",
		Writer:                    out,
		DisableSliceFlagSeparator: true,
		Flags:                     []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file with db, ai and parse_timeout defaults",
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Import creators and posts from a YAML fixture",
				Action: importCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Fixture file to import",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records written in each transaction",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed batches",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "creators",
				Usage:  "Run a chain of creator queries over the roster",
				Action: creatorsCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.StringSliceFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Query to add to the chain (repeatable, applied in order)",
						Required: true,
					},
				}, aiFlags()...),
			},
			{
				Name:   "posts",
				Usage:  "Rank and search one creator's posts",
				Action: postsCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "creator",
						Usage:    "Creator ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Free-text post search",
					},
				}, aiFlags()...),
			},
			{
				Name:   "topic",
				Usage:  "List the creators tagged with a topic",
				Action: topicCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Topic to look up",
						Required: true,
					},
				},
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to BadgerDB database directory",
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "Query parser service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "ai-model",
			Usage: "Query parser model name",
			Value: "qwen2.5:3b",
		},
		&cli.DurationFlag{
			Name:  "parse-timeout",
			Usage: "Maximum time to wait for the query parser",
		},
	}
}

func openDatabase(s *settings) (*scout.Database, error) {
	provider, err := newProvider(s.ai)
	if err != nil {
		return nil, fmt.Errorf("failed to create query parsers: %w", err)
	}
	db, err := scout.NewDatabase(s.dbPath, scout.WithAIProvider(provider))
	if err != nil {
		provider.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	s, err := resolveSettings(c)
	if err != nil {
		return err
	}

	config := &importer.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	fixture, err := importer.LoadFixture(c.String("file"))
	if err != nil {
		return err
	}

	db, err := openDatabase(s)
	if err != nil {
		return err
	}
	defer db.Close()

	imp, err := db.NewImporter(config, c.App.ErrWriter)
	if err != nil {
		return fmt.Errorf("failed to create importer: %w", err)
	}

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", s.dbPath)
	fmt.Fprintf(c.App.ErrWriter, "Fixture: %s\n", c.String("file"))
	fmt.Fprintln(c.App.ErrWriter)

	summary, err := imp.Run(ctx, fixture)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Imported %d creators and %d posts in %s\n",
		summary.Creators, summary.Posts, summary.Elapsed.Round(time.Millisecond))
	return nil
}

func creatorsCommand(c *cli.Context) error {
	ctx := context.Background()

	s, err := resolveSettings(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(s)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []session.Option{session.WithMonitor(logic.NewLoggingMonitor(slog.Default()))}
	if s.parseTimeout > 0 {
		opts = append(opts, session.WithParseTimeout(s.parseTimeout))
	}
	sess, err := db.NewSession(opts...)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	for _, query := range c.StringSlice("query") {
		if _, err := sess.Submit(ctx, query); err != nil {
			return fmt.Errorf("query %q: %w", query, err)
		}
	}

	results, err := sess.Results(ctx)
	if err != nil {
		return err
	}

	for i, node := range sess.Nodes() {
		creators := results[node.ID]
		fmt.Fprintf(c.App.Writer, "%d. [%s] %s (%d)\n", i+1, node.Operator, node.Description, len(creators))
		for _, creator := range creators {
			fmt.Fprintf(c.App.Writer, "   %s\n", formatCreator(creator))
		}
	}

	if semantic := sess.SemanticFilters(); len(semantic) > 0 {
		labels := make([]string, 0, len(semantic))
		for _, f := range semantic {
			labels = append(labels, fmt.Sprintf("%s: %s", f.Type, f.Label))
		}
		fmt.Fprintf(c.App.Writer, "Looking for: %s\n", strings.Join(labels, ", "))
	}
	return nil
}

func postsCommand(c *cli.Context) error {
	ctx := context.Background()

	s, err := resolveSettings(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(s)
	if err != nil {
		return err
	}
	defer db.Close()

	creator, err := db.Catalog().GetCreator(ctx, c.String("creator"))
	if err != nil {
		return fmt.Errorf("failed to load creator: %w", err)
	}

	var opts []session.Option
	if s.parseTimeout > 0 {
		opts = append(opts, session.WithParseTimeout(s.parseTimeout))
	}
	search, err := db.NewPostSearch(opts...)
	if err != nil {
		return fmt.Errorf("failed to create post search: %w", err)
	}

	result, err := search.Search(ctx, creator.ID, c.String("query"))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%s: %d of %d posts", formatCreator(*creator), len(result.Posts), result.Total)
	if result.SortBy != "" {
		fmt.Fprintf(c.App.Writer, " by %s", result.SortBy)
	}
	if result.Fallback {
		fmt.Fprint(c.App.Writer, " (text search)")
	}
	fmt.Fprintln(c.App.Writer)

	for i, post := range result.Posts {
		fmt.Fprintf(c.App.Writer, "%2d. %s\n", i+1, formatPost(post))
	}
	return nil
}

func topicCommand(c *cli.Context) error {
	ctx := context.Background()

	s, err := resolveSettings(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(s)
	if err != nil {
		return err
	}
	defer db.Close()

	creators, err := db.Catalog().GetCreatorsByTopic(ctx, c.String("name"))
	if err != nil {
		return err
	}
	for _, creator := range creators {
		fmt.Fprintln(c.App.Writer, formatCreator(creator))
	}
	return nil
}

func formatCreator(c core.Creator) string {
	handle := c.Handle
	if handle == "" {
		handle = c.ID
	}
	return fmt.Sprintf("%s %s (%s, %s, %d followers)", handle, c.Name, c.Platform, c.Location, c.Followers)
}

func formatPost(p core.Post) string {
	b := p.ScoreBreakdown
	dominant := string(b.DominantSignal)
	if dominant == "" {
		dominant = "-"
	}
	return fmt.Sprintf("%s %-5s score=%3d base=%.2f signals=%d dominant=%s %q",
		p.ID, p.ContentType, b.NormalizedScore, b.BaseTotal, b.SignalCount, dominant, p.Caption)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
