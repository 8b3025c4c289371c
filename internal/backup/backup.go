package backup

import (
	"encoding/json"
	"fmt"
	"io"

	"sunflower/internal/services"
	"sunflower/internal/tags"
)

// Encode writes the tag sequence as a JSON backup document. The export is
// the store contents verbatim, ids included; imports match on file name and
// ignore the ids.
func Encode(w io.Writer, backup []tags.Tag) error {
	if backup == nil {
		backup = []tags.Tag{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return services.Wrap(services.ErrIO, "backup", "encode", "write backup", err)
	}
	return nil
}

// Decode parses a JSON backup document and validates its structure. A
// malformed payload fails with a parse error before any entry is returned,
// so callers never apply a partial backup.
func Decode(r io.Reader) ([]tags.Tag, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "backup", "decode", "read backup", err)
	}

	var backup []tags.Tag
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, services.Wrap(services.ErrParse, "backup", "decode", "malformed backup payload", err)
	}

	for i := range backup {
		if backup[i].FileName == "" {
			return nil, services.Wrap(services.ErrParse, "backup", "decode",
				fmt.Sprintf("entry %d is missing fileName", i), nil)
		}
	}
	return backup, nil
}
