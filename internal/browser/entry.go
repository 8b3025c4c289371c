package browser

import "sunflower/internal/nametag"

// Kind discriminates the entry variants produced by a directory listing.
type Kind int

const (
	KindDirectory Kind = iota
	KindPlainFile
	KindVideoClip
)

// String returns the lowercase variant name.
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindPlainFile:
		return "file"
	case KindVideoClip:
		return "video"
	default:
		return "unknown"
	}
}

// Clip carries the tag data of a video entry. Artist and title are seeded
// from name inference and overlaid with a stored tag when one exists for the
// file name. Album is empty unless supplied by a tag.
type Clip struct {
	FileName string
	Artist   string
	Title    string
	Album    string
}

// DisplayName formats the clip as "artist - title (album)" with an
// "Unknown Album" fallback.
func (c Clip) DisplayName() string {
	return nametag.DisplayName(c.Artist, c.Title, c.Album)
}

// Entry is one item of a directory listing. Entries are rebuilt on every
// listing and hold a read-only snapshot of tag data at listing time.
type Entry struct {
	Kind Kind
	Name string
	Path string

	// Clip is set only for KindVideoClip entries.
	Clip *Clip
}

// DisplayName returns the rendered name for the entry: clip tags for videos,
// the raw name otherwise.
func (e Entry) DisplayName() string {
	if e.Kind == KindVideoClip && e.Clip != nil {
		return e.Clip.DisplayName()
	}
	return e.Name
}
