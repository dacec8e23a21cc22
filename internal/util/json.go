package util

import (
	"encoding/json"
	"io"
)

// WriteJSON writes v as indented JSON followed by a newline. Unlike
// json.Marshal it leaves <, > and & as they are: the output is for
// terminals and pipes, not for HTML.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
