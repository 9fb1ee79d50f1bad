package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"thainews/internal/calendar"
)

const userAgent = "thaicalendar/1.0"

var outputFormats = []string{"json", "yaml"}

func newApp(out io.Writer) *cli.Command {
	now := time.Now().In(calendar.ThaiTime)

	return &cli.Command{
		Name:   "thaicalendar",
		Usage:  "Thai holy days and holidays",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output format (json or yaml)",
				Value:   "json",
				Validator: func(v string) error {
					for _, f := range outputFormats {
						if v == f {
							return nil
						}
					}
					return fmt.Errorf("must be one of %v", outputFormats)
				},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "wanphra",
				Usage:     "list the holy days of a month",
				UsageText: "thaicalendar wanphra --year 2024 --month 4",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Value: now.Year()},
					&cli.IntFlag{Name: "month", Aliases: []string{"m"}, Value: int(now.Month())},
					&cli.StringFlag{
						Name:    "source-url",
						Usage:   "remote observance feed queried first",
						Sources: cli.NewValueSourceChain(cli.EnvVar("CALENDAR_SOURCE_URL")),
					},
					&cli.DurationFlag{Name: "timeout", Value: calendar.DefaultConfig().SourceTimeout},
					&cli.StringFlag{Name: "fallback-file", Usage: "YAML table replacing the built-in fallback"},
					&cli.BoolFlag{Name: "no-lunar", Usage: "skip the astronomical calculator", HideDefault: true},
				},
				Action: runWanPhra,
			},
			{
				Name:      "holidays",
				Usage:     "list fixed-date holidays",
				UsageText: "thaicalendar holidays --year 2025 [--month 4]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Value: now.Year()},
					&cli.IntFlag{Name: "month", Aliases: []string{"m"}, Usage: "0 for the whole year"},
				},
				Action: runHolidays,
			},
		},
	}
}

func runWanPhra(ctx context.Context, cmd *cli.Command) error {
	cfg := calendar.DefaultConfig()
	cfg.SourceURL = cmd.String("source-url")
	cfg.SourceTimeout = cmd.Duration("timeout")
	cfg.FallbackFile = cmd.String("fallback-file")
	cfg.LunarCalculator = !cmd.Bool("no-lunar")

	r, err := calendar.NewFromConfig(cfg, userAgent)
	if err != nil {
		return err
	}
	res := r.Resolve(ctx, int(cmd.Int("year")), int(cmd.Int("month")))
	return render(cmd, res)
}

func runHolidays(_ context.Context, cmd *cli.Command) error {
	return render(cmd, calendar.Holidays(int(cmd.Int("year")), int(cmd.Int("month"))))
}

func render(cmd *cli.Command, v any) error {
	w := cmd.Root().Writer
	if cmd.String("output") == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
