package tags

import "time"

// Tag is the persisted, user-editable metadata for a video clip, keyed by
// its file name. Exactly one Tag exists per file name at any time. The file
// name is immutable after creation; artist, title, and album change only
// through Update.
type Tag struct {
	ID       int64  `json:"id,omitempty"`
	FileName string `json:"fileName"`
	Artist   string `json:"artist"`
	Title    string `json:"title"`
	Album    string `json:"album"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
