package nametag

import "strings"

const (
	// UnknownArtist is used when a file name does not follow the
	// "artist - title" pattern.
	UnknownArtist = "Unknown Artist"
	// UnknownAlbum is used when a clip carries no album information.
	UnknownAlbum = "Unknown Album"

	separator = " - "
)

// Infer derives artist and title metadata from a video file name.
//
// The extension-stripped name is split on its first " - " occurrence; when
// both sides are non-empty the left side becomes the artist and the right
// side the title, each trimmed of surrounding whitespace. The right side
// keeps any further separators verbatim. Names that do not match yield
// UnknownArtist with the extension-stripped name as title.
func Infer(fileName string) (artist, title string) {
	base := StripExtension(fileName)

	if idx := strings.Index(base, separator); idx >= 0 {
		left := base[:idx]
		right := base[idx+len(separator):]
		if left != "" && right != "" {
			return strings.TrimSpace(left), strings.TrimSpace(right)
		}
	}

	return UnknownArtist, base
}

// StripExtension removes the final dot-delimited suffix from a file name.
// Names without a dot, or ending in a bare dot, are returned unchanged.
func StripExtension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return name
	}
	return name[:idx]
}

// DisplayName formats clip metadata for listings: "artist - title (album)".
// An empty album renders as UnknownAlbum.
func DisplayName(artist, title, album string) string {
	if album == "" {
		album = UnknownAlbum
	}
	return artist + separator + title + " (" + album + ")"
}
