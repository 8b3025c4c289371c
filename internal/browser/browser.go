package browser

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"sunflower/internal/nametag"
	"sunflower/internal/services"
	"sunflower/internal/tags"
)

// VideoExtensions is the suffix set that classifies an entry as a video clip.
// Matching is case-sensitive.
var VideoExtensions = []string{"m4v", "mp4", "mkv", "webm", "ts", "flv"}

// Browser walks a directory tree one level at a time and classifies entries.
// It reads tags from the store to overlay user edits onto inferred metadata
// but never writes to it.
type Browser struct {
	store  *tags.Store
	logger *slog.Logger
	dir    string
}

// New constructs a browser rooted at startDir. The store may be nil, in
// which case listings carry inferred tags only.
func New(store *tags.Store, startDir string, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Browser{
		store:  store,
		logger: logger,
		dir:    filepath.Clean(startDir),
	}
}

// CurrentDirectory returns the directory the next List call will read.
func (b *Browser) CurrentDirectory() string {
	return b.dir
}

// List reads the immediate children of the current directory, classifies
// them, and orders them with the given comparator. An unreadable directory
// yields an empty listing rather than an error so callers never crash on a
// stale path; only tag-store failures are surfaced.
func (b *Browser) List(ctx context.Context, cmp Comparator) ([]Entry, error) {
	if cmp == nil {
		cmp = ByName
	}

	dirEntries, err := os.ReadDir(b.dir)
	if err != nil {
		b.logger.Warn("directory unreadable, returning empty listing",
			slog.String("dir", b.dir), slog.Any("error", err))
		return []Entry{}, nil
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entry, err := b.classify(ctx, de.Name(), de.IsDir())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	slices.SortStableFunc(entries, cmp)
	return entries, nil
}

func (b *Browser) classify(ctx context.Context, name string, isDir bool) (Entry, error) {
	path := filepath.Join(b.dir, name)

	if isDir {
		return Entry{Kind: KindDirectory, Name: name, Path: path}, nil
	}
	if !isVideo(name) {
		return Entry{Kind: KindPlainFile, Name: name, Path: path}, nil
	}

	artist, title := nametag.Infer(name)
	clip := &Clip{FileName: name, Artist: artist, Title: title}

	if b.store != nil {
		tag, err := b.store.FindByFileName(ctx, name)
		if err != nil {
			return Entry{}, err
		}
		if tag != nil {
			clip.Artist = tag.Artist
			clip.Title = tag.Title
			clip.Album = tag.Album
		}
	}

	return Entry{Kind: KindVideoClip, Name: name, Path: path, Clip: clip}, nil
}

// HasParent reports whether the current directory has a reachable parent.
// Callers must check it before ToParent.
func (b *Browser) HasParent() bool {
	parent := filepath.Dir(b.dir)
	if parent == b.dir {
		return false
	}
	info, err := os.Stat(parent)
	return err == nil && info.IsDir()
}

// ToParent moves the browser to the parent directory. Without a parent it is
// a no-op; HasParent gates the call.
func (b *Browser) ToParent() {
	parent := filepath.Dir(b.dir)
	if parent == b.dir {
		return
	}
	b.dir = parent
}

// Enter moves the browser into the given directory unconditionally; an
// invalid path simply produces an empty listing on the next List call.
func (b *Browser) Enter(path string) error {
	if strings.TrimSpace(path) == "" {
		return services.Wrap(services.ErrInvalidArgument, "browser", "enter", "path is required", nil)
	}
	b.dir = filepath.Clean(path)
	return nil
}

func isVideo(name string) bool {
	for _, ext := range VideoExtensions {
		if strings.HasSuffix(name, "."+ext) {
			return true
		}
	}
	return false
}
