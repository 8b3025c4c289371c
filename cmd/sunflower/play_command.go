package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"sunflower/internal/config"
	"sunflower/internal/deps"
	"sunflower/internal/logging"
	"sunflower/internal/nametag"
	"sunflower/internal/notifications"
	"sunflower/internal/playback"
	"sunflower/internal/services/mpv"
	"sunflower/internal/tags"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "play <file>",
		Short: "Play a clip with the configured external player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *tags.Store) error {
				path, err := config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve media path: %w", err)
				}
				if !filepath.IsAbs(path) {
					path = filepath.Join(cfg.Paths.LibraryDir, path)
				}

				runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, unix.SIGTERM)
				defer stop()

				for _, status := range deps.CheckBinaries(deps.ForConfig(cfg)) {
					if !status.Available && !status.Optional {
						return fmt.Errorf("%s unavailable: %s", strings.ToLower(status.Name), status.Detail)
					}
				}

				track, err := resolveTrack(runCtx, store, path)
				if err != nil {
					return err
				}

				logger := logging.WithComponent(ctx.ensureLogger(), "playback")
				notifier := notifications.NewService(cfg)
				now := &playback.NowPlaying{}
				session := playback.NewSession(now, notifier, nil, logger)
				session.StopOnDone(runCtx)

				done := make(chan struct{})
				var closeOnce sync.Once
				finish := func() { closeOnce.Do(func() { close(done) }) }

				var controller *playback.Controller
				player, err := mpv.New(cfg.Player.Binary, cfg.Player.Args, mpv.Events{
					Ready: func(intendingToPlay bool) {
						controller.OnReady(context.WithoutCancel(runCtx), intendingToPlay)
					},
					Ended: func() {
						controller.OnEnded(context.WithoutCancel(runCtx))
						finish()
					},
					Errored: func() {
						controller.OnError(context.WithoutCancel(runCtx))
						finish()
					},
				}, logger)
				if err != nil {
					return err
				}
				controller = playback.NewController(session, player)

				fmt.Fprintf(cmd.OutOrStdout(), "Playing %s\n",
					nametag.DisplayName(track.Artist, track.Title, track.Album))
				if err := controller.Start(runCtx, path, track); err != nil {
					return err
				}

				g, gctx := errgroup.WithContext(runCtx)
				g.Go(func() error {
					select {
					case <-done:
						return nil
					case <-gctx.Done():
						session.Stop(context.WithoutCancel(gctx))
						if err := player.Release(); err != nil {
							logger.Warn("player release failed", "error", err)
						}
						return gctx.Err()
					}
				})
				if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
		},
	}
}

// resolveTrack builds the playback metadata for a path, preferring a stored
// tag over name inference.
func resolveTrack(ctx context.Context, store *tags.Store, path string) (playback.Track, error) {
	if _, err := os.Stat(path); err != nil {
		return playback.Track{}, fmt.Errorf("inspect media path %q: %w", path, err)
	}

	fileName := filepath.Base(path)
	tag, err := store.FindByFileName(ctx, fileName)
	if err != nil {
		return playback.Track{}, err
	}
	if tag != nil {
		return playback.Track{Title: tag.Title, Artist: tag.Artist, Album: tag.Album}, nil
	}

	artist, title := nametag.Infer(fileName)
	return playback.Track{Title: title, Artist: artist}, nil
}
