package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"grimoire/internal/captions"
	"grimoire/internal/config"
	"grimoire/internal/grimoire"
	"grimoire/internal/models"
)

// errValidation signals that content failed a check; the violations are
// printed before it is returned.
var errValidation = errors.New("validation failed")

type cli struct {
	catalogPath string
	catalog     *config.Catalog
	index       *grimoire.Index
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "grimoire",
		Short:         "Grimoire content tools",
		Long:          `grimoire resolves slugs against the content catalog and checks hooks and captions against its rules.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
	}
	root.PersistentFlags().StringVar(&c.catalogPath, "catalog", os.Getenv("CATALOG_FILE"), "path to the YAML catalog (default: built-in catalog)")

	root.AddCommand(
		c.resolveCmd(),
		c.entriesCmd(),
		c.hookCmd(),
		c.captionCmd(),
		c.redactCmd(),
	)
	return root
}

func (c *cli) load() error {
	var err error
	c.catalog, err = config.LoadCatalogOrDefault(c.catalogPath)
	if err != nil {
		return err
	}

	c.index, err = grimoire.NewIndex(c.catalog.Entries)
	if err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	return nil
}

func (c *cli) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <query...>",
		Short: "Resolve a slug, title, alias or keyword to its canonical slug",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			result := c.index.Resolve(query)
			out := cmd.OutOrStdout()

			if result.MatchType == models.MatchNone {
				fmt.Fprintf(out, "%s no entry matches %q\n", color.RedString("MISS"), query)
				return errValidation
			}
			fmt.Fprintf(out, "%s %s (%s)\n", color.GreenString("HIT"), *result.Slug, result.MatchType)
			return nil
		},
	}
}

func (c *cli) entriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entries",
		Short: "List catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tTITLE\tALIASES")
			for _, e := range c.index.Entries() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Slug, e.Title, strings.Join(e.Aliases, ", "))
			}
			return w.Flush()
		},
	}
}

func (c *cli) hookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hook <text...>",
		Short: "Check a hook line against the catalog's hook rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(args, " ")
			violations := captions.ValidateHook(line, c.catalog.Hooks)
			return report(cmd.OutOrStdout(), fmt.Sprintf("%d words", captions.WordCount(line)), violations)
		},
	}
}

func (c *cli) captionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "caption <file|->",
		Short: "Check a caption file (or stdin) against the catalog's caption rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			result := captions.ValidateCaption(text, c.catalog.Captions)
			return report(cmd.OutOrStdout(), fmt.Sprintf("%d lines", len(result.Lines)), result.Violations)
		},
	}
}

func (c *cli) redactCmd() *cobra.Command {
	var every int

	cmd := &cobra.Command{
		Use:   "redact <text...>",
		Short: "Mask every nth word for a locked preview",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := every
			if n == 0 {
				n = c.catalog.RedactEvery
			}
			if n < 1 {
				return fmt.Errorf("--every must be positive, got %d", n)
			}
			fmt.Fprintln(cmd.OutOrStdout(), captions.Redact(strings.Join(args, " "), n, captions.DefaultRedactMask))
			return nil
		},
	}
	cmd.Flags().IntVar(&every, "every", 0, "redact every nth word (default: catalog setting)")
	return cmd
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// report prints PASS or FAIL with each violation and returns errValidation on
// failure.
func report(w io.Writer, detail string, violations []string) error {
	if len(violations) == 0 {
		fmt.Fprintf(w, "%s (%s)\n", color.GreenString("PASS"), detail)
		return nil
	}
	fmt.Fprintf(w, "%s (%s)\n", color.RedString("FAIL"), detail)
	for _, v := range violations {
		fmt.Fprintf(w, "  - %s\n", v)
	}
	return errValidation
}
