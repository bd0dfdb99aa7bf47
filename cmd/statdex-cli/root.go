package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/paveg/statdex"
	"github.com/paveg/statdex/internal/config"
	"github.com/paveg/statdex/internal/errors"
	"github.com/paveg/statdex/internal/logging"
	"github.com/paveg/statdex/internal/validation"
	"github.com/paveg/statdex/internal/version"
	"github.com/spf13/cobra"
)

// app carries the persistent flags shared by every subcommand.
type app struct {
	files      []string
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "statdex-cli",
		Short: "Query hp and speed statistics of a character dataset",
		Long: `statdex-cli loads a comma separated character dataset and answers
name lookups, range queries, extrema and group rankings over hp and speed.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringSliceVarP(&a.files, "file", "f", nil, "dataset file; repeat to give fallbacks")
	flags.StringVarP(&a.configPath, "config", "c", "", "configuration file (.json, .yaml, .yml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (text, json)")

	root.AddCommand(
		a.loadCmd(),
		a.findCmd(),
		a.rangeCmd(),
		a.valueCmd(),
		a.extremumCmd("min", true),
		a.extremumCmd("max", false),
		a.groupsCmd(),
		a.largestCmd(),
		a.topCmd(),
		a.namesCmd(),
		a.previewCmd(),
		a.exportCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) config() (config.Config, error) {
	cfg := config.NewConfig()
	if a.configPath != "" {
		loaded, err := config.LoadFromFile(a.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	cfg = config.LoadFromEnv(cfg)

	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	return cfg, cfg.Validate()
}

// dataset builds a dataset from the flags and loads the first readable file.
func (a *app) dataset(cmd *cobra.Command) (*statdex.Dataset, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}

	logger, err := logging.FromConfig(cfg.LogFormat, cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	ds, err := statdex.New(statdex.WithConfig(cfg), statdex.WithLogger(logger.Logger))
	if err != nil {
		return nil, err
	}

	if _, _, err := ds.OpenFirst(a.files...); err != nil {
		return nil, err
	}
	return ds, nil
}

func (a *app) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load the dataset and report row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.dataset(cmd)
			if err != nil {
				return err
			}

			stats := ds.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rows read: %d\n", stats.Rows)
			fmt.Fprintf(out, "Characters loaded: %d\n", stats.Accepted)
			fmt.Fprintf(out, "Rows skipped: %d\n", stats.SkippedCount())
			fmt.Fprintf(out, "Fingerprint: %016x\n", ds.Fingerprint())
			return nil
		},
	}
}

func (a *app) findCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find NAME",
		Short: "Look up a character by name, ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.dataset(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			header, row, ok := ds.FindRow(args[0])
			if !ok {
				fmt.Fprintf(out, "%s was not found\n", args[0])
				return nil
			}
			c, _ := ds.Find(args[0])
			fmt.Fprintln(out, header)
			fmt.Fprintln(out, row)
			fmt.Fprintln(out, c.String())
			return nil
		},
	}
}

func (a *app) rangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "range ATTRIBUTE LOW HIGH",
		Short: "List characters whose attribute lies within the inclusive range",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			attr, bounds, err := parseAttributeArgs(args)
			if err != nil {
				return err
			}
			ds, err := a.dataset(cmd)
			if err != nil {
				return err
			}

			printSet(cmd.OutOrStdout(), ds.ByRange(attr, bounds[0], bounds[1]))
			return nil
		},
	}
}

func (a *app) valueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "value ATTRIBUTE VALUE",
		Short: "List characters whose attribute equals the value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			attr, values, err := parseAttributeArgs(args)
			if err != nil {
				return err
			}
			ds, err := a.dataset(cmd)
			if err != nil {
				return err
			}

			printSet(cmd.OutOrStdout(), ds.ByValue(attr, values[0]))
			return nil
		},
	}
}

func (a *app) extremumCmd(use string, wantMinimum bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ATTRIBUTE",
		Short: fmt.Sprintf("List characters holding the %s value of the attribute", use),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attr, _, err := parseAttributeArgs(args)
			if err != nil {
				return err
			}
			ds, err := a.dataset(cmd)
			if err != nil {
				return err
			}

			printSet(cmd.OutOrStdout(), ds.Extremum(attr, wantMinimum))
			return nil
		},
	}
}

func (a *app) groupsCmd() *cobra.Command {
	var (
		k        int
		smallest bool
	)
	cmd := &cobra.Command{
		Use:   "groups ATTRIBUTE",
		Short: "Rank attribute values by how many characters share them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attr, _, err := parseAttributeArgs(args)
			if err != nil {
				return err
			}
			ds, err := a.dataset(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("k") {
				k = ds.Config().TopK
			}
			if err := validation.ValidatePositive(k, "groups", "k"); err != nil {
				return err
			}

			printGroups(cmd.OutOrStdout(), ds.TopGroups(attr, k, !smallest))
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", config.DefaultTopK, "number of groups to show")
	cmd.Flags().BoolVar(&smallest, "smallest", false, "rank the smallest groups first")
	return cmd
}

func (a *app) largestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "largest ATTRIBUTE",
		Short: "Show the attribute value shared by the most characters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attr, _, err := parseAttributeArgs(args)
			if err != nil {
				return err
			}
			ds, err := a.dataset(cmd)
			if err != nil {
				return err
			}

			group, ok := ds.LargestGroup(attr)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), noCharacters)
				return nil
			}
			printGroups(cmd.OutOrStdout(), []statdex.Group{group})
			return nil
		},
	}
}

func (a *app) topCmd() *cobra.Command {
	var (
		k      int
		lowest bool
	)
	cmd := &cobra.Command{
		Use:   "top ATTRIBUTE",
		Short: "Show the characters of the highest distinct attribute values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attr, _, err := parseAttributeArgs(args)
			if err != nil {
				return err
			}
			ds, err := a.dataset(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("k") {
				k = ds.Config().TopK
			}
			if err := validation.ValidatePositive(k, "top", "k"); err != nil {
				return err
			}

			printGroups(cmd.OutOrStdout(), ds.TopValues(attr, k, !lowest))
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", config.DefaultTopK, "number of values to show")
	cmd.Flags().BoolVar(&lowest, "lowest", false, "show the lowest values instead")
	return cmd
}

func (a *app) namesCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Write the distinct character names to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.dataset(cmd)
			if err != nil {
				return err
			}
			if out == "" {
				out = ds.Config().ResultsFile
			}
			if err := ds.WriteNames(out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d names to %s\n", len(ds.Names()), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "target file (default from configuration)")
	return cmd
}

func (a *app) previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Print the first and last lines of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.dataset(cmd)
			if err != nil {
				return err
			}

			head, tail := ds.Preview()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "First %d lines:\n", len(head))
			for _, line := range head {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "\nLast %d lines:\n", len(tail))
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export ATTRIBUTE LOW HIGH",
		Short: "Export the characters of an attribute range",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			attr, bounds, err := parseAttributeArgs(args)
			if err != nil {
				return err
			}
			ds, err := a.dataset(cmd)
			if err != nil {
				return err
			}
			if format == "" {
				format = ds.Config().ExportFormat
			}
			exportFormat, err := statdex.ParseExportFormat(format)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, createErr := os.Create(out)
				if createErr != nil {
					return errors.NewIOError("export", "creating "+out, createErr)
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				w = f
			}

			return ds.Export(w, ds.ByRange(attr, bounds[0], bounds[1]).Items(), exportFormat)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "csv, json, jsonl or parquet (default from configuration)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info().String())
		},
	}
}

const noCharacters = "No characters found"

// parseAttributeArgs parses the attribute name in args[0] and the integers after it.
func parseAttributeArgs(args []string) (statdex.Attribute, []int, error) {
	attr, err := statdex.ParseAttribute(args[0])
	if err != nil {
		return attr, nil, err
	}

	values := make([]int, 0, len(args)-1)
	for _, arg := range args[1:] {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return attr, nil, errors.NewInvalidInputError("parse", fmt.Sprintf("%q is not an integer", arg))
		}
		values = append(values, v)
	}
	return attr, values, nil
}

func printSet(w io.Writer, set statdex.Set) {
	if set.IsEmpty() {
		fmt.Fprintln(w, noCharacters)
		return
	}
	for _, line := range set.Strings() {
		fmt.Fprintln(w, line)
	}
}

func printGroups(w io.Writer, groups []statdex.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(w, noCharacters)
		return
	}
	for _, g := range groups {
		fmt.Fprintf(w, "%s %d (%d characters)\n", g.Members.Attribute().Label(), g.Value, g.Size())
		for _, line := range g.Members.Strings() {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
