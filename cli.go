// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"codeberg.org/transcat/transcat/catalog"
	"codeberg.org/transcat/transcat/config"
	_ "codeberg.org/transcat/transcat/format/all"
	"codeberg.org/transcat/transcat/mt"
	"codeberg.org/transcat/transcat/pretranslate"
	"codeberg.org/transcat/transcat/qa"
	"codeberg.org/transcat/transcat/tm"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp() *cli.App {
	app := &cli.App{
		Name:    "transcat",
		Usage:   "Toolbox for PO, POT, XLIFF and JSON translation catalogs",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Configuration file path"},
		},
		Before: func(c *cli.Context) error {
			return config.Global.Load(c.String("config"))
		},
		Commands: []*cli.Command{
			statsCmd(),
			validateCmd(),
			convertCmd(),
			purgeCmd(),
			sideloadCmd(),
			learnCmd(),
			pretranslateCmd(),
			extractCmd(),
		},
	}
	// Disable the default exit error handler so main controls the exit code.
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}

	return app
}

// statsCmd creates the stats command.
func statsCmd() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Show translation statistics for catalog files",
		ArgsUsage: "<file>...",
		Action: func(c *cli.Context) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("stats: at least one catalog file is required", 2)
			}

			loaded := make([]*catalog.Catalog, len(paths))

			var g errgroup.Group
			for i, path := range paths {
				i, path := i, path
				g.Go(func() error {
					cat, err := catalog.Open(path, 0)
					if err != nil {
						return err
					}

					loaded[i] = cat

					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}

			var total catalog.Statistics

			for i, cat := range loaded {
				st := cat.Statistics()
				printStatistics(paths[i], st)

				total.Total += st.Total
				total.Fuzzy += st.Fuzzy
				total.Errors += st.Errors
				total.Untranslated += st.Untranslated
				total.Unfinished += st.Unfinished
			}

			if len(loaded) > 1 {
				printStatistics("total", total)
			}

			return nil
		},
	}
}

func printStatistics(label string, st catalog.Statistics) {
	translated := st.Total - st.Unfinished

	pct := 0
	if st.Total > 0 {
		pct = translated * 100 / st.Total
	}

	fmt.Printf("%s: %d strings, %d translated (%d%%), %d fuzzy, %d with errors, %d untranslated\n",
		label, st.Total, translated, pct, st.Fuzzy, st.Errors, st.Untranslated)
}

// validateCmd creates the validate command.
func validateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check catalog files for problems",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-warnings", Usage: "Report only errors"},
		},
		Action: func(c *cli.Context) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("validate: at least one catalog file is required", 2)
			}

			showWarnings := config.Global.Validation.ShowWarnings && !c.Bool("no-warnings")
			checker := qa.NewChecker()

			totalErrors := 0

			for _, path := range paths {
				cat, err := catalog.Open(path, 0)
				if err != nil {
					return err
				}

				errs, warns := cat.Validate(checker, showWarnings)
				totalErrors += errs

				fmt.Printf("%s: %d errors, %d warnings\n", path, errs, warns)

				for _, it := range cat.Items() {
					if !it.HasIssue() {
						continue
					}

					issue := it.Issue()

					severity := "warning"
					if issue.Severity == catalog.IssueError {
						severity = "error"
					}

					fmt.Printf("  %s:%d: %s: %s\n", path, it.LineNumber(), severity, issue.Message)
				}
			}

			if totalErrors > 0 {
				return cli.Exit("", 1)
			}

			return nil
		},
	}
}

// convertCmd creates the convert command.
func convertCmd() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a catalog to the format implied by the output extension",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "Output file path"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("convert: exactly one input file is required", 2)
			}

			cat, err := catalog.Open(c.Args().First(), 0)
			if err != nil {
				return err
			}

			return catalog.Save(cat, c.String("output"))
		},
	}
}

// purgeCmd creates the purge-same-as-source command.
func purgeCmd() *cli.Command {
	return &cli.Command{
		Name:      "purge-same-as-source",
		Usage:     "Clear translations that merely repeat the source string",
		ArgsUsage: "<file>...",
		Action: func(c *cli.Context) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("purge-same-as-source: at least one catalog file is required", 2)
			}

			for _, path := range paths {
				cat, err := catalog.Open(path, 0)
				if err != nil {
					return err
				}

				if !cat.RemoveSameAsSourceTranslations() {
					fmt.Printf("%s: nothing to clear\n", path)
					continue
				}

				if err := catalog.Save(cat, path); err != nil {
					return err
				}

				fmt.Printf("%s: same-as-source translations cleared\n", path)
			}

			return nil
		},
	}
}

// sideloadCmd creates the sideload command.
func sideloadCmd() *cli.Command {
	return &cli.Command{
		Name:      "sideload",
		Usage:     "Overlay human-readable source text from a reference catalog",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "reference", Aliases: []string{"r"}, Required: true, Usage: "Reference catalog path"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("sideload: exactly one catalog file is required", 2)
			}

			cat, err := catalog.Open(c.Args().First(), 0)
			if err != nil {
				return err
			}

			ref, err := catalog.Open(c.String("reference"), 0)
			if err != nil {
				return err
			}

			cat.SideloadSourceDataFromReferenceFile(ref)

			matched := 0

			for _, it := range cat.Items() {
				if it.SideloadedData() != nil {
					matched++
				}
			}

			fmt.Printf("%s: %d of %d items matched in %s\n",
				c.Args().First(), matched, len(cat.Items()), c.String("reference"))

			for _, it := range cat.Items() {
				if data := it.SideloadedData(); data != nil {
					fmt.Printf("  %q -> %q\n", it.RawSource(), data.SourceString)
				}
			}

			return nil
		},
	}
}

// openMemory opens the translation memory selected by the --tm flag,
// falling back to the configured path.
func openMemory(c *cli.Context) (*tm.Memory, error) {
	path := c.String("tm")
	if path == "" {
		path = config.Global.TM.Path
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating translation memory directory: %w", err)
		}
	}

	return tm.Open(path, config.Global.TM.CacheEntries)
}

// learnCmd creates the learn command.
func learnCmd() *cli.Command {
	return &cli.Command{
		Name:      "learn",
		Usage:     "Feed translated items into the translation memory",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tm", Usage: "Translation memory database path (defaults to the configured one)"},
		},
		Action: func(c *cli.Context) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("learn: at least one catalog file is required", 2)
			}

			memory, err := openMemory(c)
			if err != nil {
				return err
			}
			defer memory.Close()

			for _, path := range paths {
				cat, err := catalog.Open(path, 0)
				if err != nil {
					return err
				}

				stored, err := memory.Learn(cat)
				if err != nil {
					return err
				}

				fmt.Printf("%s: %d translations stored\n", path, stored)
			}

			return nil
		},
	}
}

// pretranslateCmd creates the pretranslate command.
func pretranslateCmd() *cli.Command {
	return &cli.Command{
		Name:      "pretranslate",
		Usage:     "Fill untranslated items from the translation memory and optionally machine translation",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tm", Usage: "Translation memory database path (defaults to the configured one)"},
			&cli.BoolFlag{Name: "mt", Usage: "Also query the configured machine translation service"},
			&cli.BoolFlag{Name: "fuzzy", Usage: "Mark filled items as needing review"},
		},
		Action: func(c *cli.Context) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("pretranslate: at least one catalog file is required", 2)
			}

			memory, err := openMemory(c)
			if err != nil {
				return err
			}
			defer memory.Close()

			var translator pretranslate.Translator

			if c.Bool("mt") {
				client, err := mt.New(mt.Options{
					Endpoint:          config.Global.MT.Endpoint,
					APIKey:            config.Global.MT.APIKey,
					RequestsPerSecond: config.Global.MT.RequestsPerSecond,
					Burst:             config.Global.MT.Burst,
					Timeout:           config.Global.MT.Timeout,
				})
				if err != nil {
					return err
				}

				translator = client
			}

			opts := pretranslate.Options{MarkFuzzy: c.Bool("fuzzy")}

			for _, path := range paths {
				cat, err := catalog.Open(path, 0)
				if err != nil {
					return err
				}

				stats, err := pretranslate.Fill(c.Context, cat, memory, translator, opts)
				if err != nil {
					return err
				}

				if stats.Filled() > 0 {
					if err := catalog.Save(cat, path); err != nil {
						return err
					}
				}

				fmt.Printf("%s: %d filled from memory, %d machine translated, %d left untranslated\n",
					path, stats.FromTM, stats.FromMT, stats.Unfilled)
			}

			return nil
		},
	}
}
