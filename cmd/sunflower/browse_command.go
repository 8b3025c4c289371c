package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"sunflower/internal/browser"
	"sunflower/internal/config"
	"sunflower/internal/logging"
	"sunflower/internal/tags"
)

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "browse [directory]",
		Short: "List a library directory with inferred and stored tags",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *tags.Store) error {
				dir := cfg.Paths.LibraryDir
				if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
					expanded, err := config.ExpandPath(args[0])
					if err != nil {
						return fmt.Errorf("resolve directory: %w", err)
					}
					dir = expanded
				}

				cmp, err := resolveComparator(locale)
				if err != nil {
					return err
				}

				logger := logging.WithComponent(ctx.ensureLogger(), "browser")
				b := browser.New(store, dir, logger)
				entries, err := b.List(cmd.Context(), cmp)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Directory: %s\n", b.CurrentDirectory())
				if len(entries) == 0 {
					fmt.Fprintln(out, "No entries")
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, browseRow(entry))
				}
				if !isTerminal(out) {
					for _, row := range rows {
						fmt.Fprintln(out, strings.Join(row, "\t"))
					}
					return nil
				}
				table := renderTable(
					[]string{"Type", "Name", "Artist", "Title", "Album"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "Collate names for the given BCP 47 locale (for example da-DK)")
	return cmd
}

func browseRow(entry browser.Entry) []string {
	switch entry.Kind {
	case browser.KindDirectory:
		return []string{"dir", entry.Name + "/", "", "", ""}
	case browser.KindVideoClip:
		clip := entry.Clip
		return []string{"clip", entry.Name, clip.Artist, clip.Title, clip.Album}
	default:
		return []string{"file", entry.Name, "", "", ""}
	}
}

func resolveComparator(locale string) (browser.Comparator, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return browser.ByName, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return browser.Collated(tag), nil
}
