package nametag_test

import (
	"testing"

	"sunflower/internal/nametag"
)

func TestInfer(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		artist   string
		title    string
	}{
		{"artist and title", "Artist - Song.mkv", "Artist", "Song"},
		{"trims whitespace", "  Artist  -  Song  .mp4", "Artist", "Song"},
		{"splits on first separator only", "A - B - C.mp4", "A", "B - C"},
		{"no separator", "movie.mp4", nametag.UnknownArtist, "movie"},
		{"plain words", "A B.ext", nametag.UnknownArtist, "A B"},
		{"no extension", "Artist - Song", "Artist", "Song"},
		{"dash without spaces", "Artist-Song.mp4", nametag.UnknownArtist, "Artist-Song"},
		{"empty left side", " - Song.mp4", nametag.UnknownArtist, " - Song"},
		{"empty right side", "Artist - .mp4", nametag.UnknownArtist, "Artist - "},
		{"separator inside extension-less name", "a - b", "a", "b"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			artist, title := nametag.Infer(tc.fileName)
			if artist != tc.artist || title != tc.title {
				t.Fatalf("Infer(%q) = (%q, %q), want (%q, %q)",
					tc.fileName, artist, title, tc.artist, tc.title)
			}
		})
	}
}

func TestStripExtension(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"movie.mp4", "movie"},
		{"archive.tar.gz", "archive.tar"},
		{"no_extension", "no_extension"},
		{"trailing.", "trailing."},
		{".hidden", ""},
	}

	for _, tc := range cases {
		if got := nametag.StripExtension(tc.in); got != tc.want {
			t.Errorf("StripExtension(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := nametag.DisplayName("Artist", "Song", "Album"); got != "Artist - Song (Album)" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := nametag.DisplayName("Unknown Artist", "movie", ""); got != "Unknown Artist - movie (Unknown Album)" {
		t.Fatalf("unexpected fallback display name %q", got)
	}
}
