package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sunflower/internal/config"
	"sunflower/internal/nametag"
	"sunflower/internal/tags"
)

func newTagsCommand(ctx *commandContext) *cobra.Command {
	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "Inspect and edit clip tags",
	}

	tagsCmd.AddCommand(newTagsListCommand(ctx))
	tagsCmd.AddCommand(newTagsShowCommand(ctx))
	tagsCmd.AddCommand(newTagsSetCommand(ctx))
	tagsCmd.AddCommand(newTagsAlbumsCommand(ctx))
	tagsCmd.AddCommand(newTagsClearCommand(ctx))

	return tagsCmd
}

func newTagsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stored tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *tags.Store) error {
				all, err := store.FindAll(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(all) == 0 {
					fmt.Fprintln(out, "No tags stored")
					return nil
				}
				rows := make([][]string, 0, len(all))
				for _, tag := range all {
					rows = append(rows, []string{
						fmt.Sprintf("%d", tag.ID),
						tag.FileName,
						tag.Artist,
						tag.Title,
						tag.Album,
					})
				}
				table := renderTable(
					[]string{"ID", "File", "Artist", "Title", "Album"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}
}

func newTagsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file-name>",
		Short: "Show the tag for one file, inferred when not stored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *tags.Store) error {
				fileName := strings.TrimSpace(args[0])
				tag, err := store.FindByFileName(cmd.Context(), fileName)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if tag == nil {
					artist, title := nametag.Infer(fileName)
					fmt.Fprintf(out, "File:    %s\n", fileName)
					fmt.Fprintf(out, "Artist:  %s (inferred)\n", artist)
					fmt.Fprintf(out, "Title:   %s (inferred)\n", title)
					fmt.Fprintf(out, "Display: %s\n", nametag.DisplayName(artist, title, ""))
					return nil
				}

				fmt.Fprintf(out, "File:    %s\n", tag.FileName)
				fmt.Fprintf(out, "Artist:  %s\n", tag.Artist)
				fmt.Fprintf(out, "Title:   %s\n", tag.Title)
				fmt.Fprintf(out, "Album:   %s\n", tag.Album)
				fmt.Fprintf(out, "Display: %s\n", nametag.DisplayName(tag.Artist, tag.Title, tag.Album))
				return nil
			})
		},
	}
}

func newTagsSetCommand(ctx *commandContext) *cobra.Command {
	var artist string
	var title string
	var album string

	cmd := &cobra.Command{
		Use:   "set <file-name>",
		Short: "Create or update the tag for one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileName := strings.TrimSpace(args[0])
			if fileName == "" {
				return errors.New("file name is required")
			}
			artist = strings.TrimSpace(artist)
			title = strings.TrimSpace(title)
			album = strings.TrimSpace(album)

			// An edit must never blank a field; the store is left untouched.
			for flag, value := range map[string]string{"artist": artist, "title": title, "album": album} {
				if cmd.Flags().Changed(flag) && value == "" {
					return fmt.Errorf("--%s must not be empty", flag)
				}
			}

			return ctx.withStore(func(cfg *config.Config, store *tags.Store) error {
				existing, err := store.FindByFileName(cmd.Context(), fileName)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if existing == nil {
					inferredArtist, inferredTitle := nametag.Infer(fileName)
					tag := tags.Tag{
						FileName: fileName,
						Artist:   firstNonEmpty(artist, inferredArtist),
						Title:    firstNonEmpty(title, inferredTitle),
						Album:    album,
					}
					if err := store.Insert(cmd.Context(), &tag); err != nil {
						return err
					}
					fmt.Fprintf(out, "Created tag %d for %s\n", tag.ID, tag.FileName)
					return nil
				}

				if artist != "" {
					existing.Artist = artist
				}
				if title != "" {
					existing.Title = title
				}
				if cmd.Flags().Changed("album") {
					existing.Album = album
				}
				if err := store.Update(cmd.Context(), existing); err != nil {
					return err
				}
				fmt.Fprintf(out, "Updated tag %d for %s\n", existing.ID, existing.FileName)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&artist, "artist", "", "Artist to store")
	cmd.Flags().StringVar(&title, "title", "", "Title to store")
	cmd.Flags().StringVar(&album, "album", "", "Album to store")
	return cmd
}

func newTagsAlbumsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "albums <artist>",
		Short: "List distinct albums for an artist in first-seen order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *tags.Store) error {
				albums, err := store.FindAlbumsByArtist(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(albums) == 0 {
					fmt.Fprintf(out, "No albums stored for %s\n", args[0])
					return nil
				}
				for _, album := range albums {
					fmt.Fprintln(out, album)
				}
				return nil
			})
		},
	}
}

func newTagsClearCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *tags.Store) error {
				out := cmd.OutOrStdout()
				if !force {
					count, err := store.Count(cmd.Context())
					if err != nil {
						return err
					}
					if count == 0 {
						fmt.Fprintln(out, "No tags stored")
						return nil
					}
					fmt.Fprintf(out, "Delete all %d stored tags? [y/N]: ", count)
					reader := bufio.NewReader(cmd.InOrStdin())
					answer, _ := reader.ReadString('\n')
					answer = strings.ToLower(strings.TrimSpace(answer))
					if answer != "y" && answer != "yes" {
						fmt.Fprintln(out, "Aborted")
						return nil
					}
				}

				removed, err := store.DeleteAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %d tags\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
