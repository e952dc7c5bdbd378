package namecache

import (
	"bytes"
	"encoding/json"
	"io"
)

// WriteJSON writes names as an indented JSON object with keys sorted
func WriteJSON(w io.Writer, names map[string]string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(names)
}

// WriteScript writes names as a `window.ITEM_NAMES = {...};` browser script
func WriteScript(w io.Writer, names map[string]string) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, names); err != nil {
		return err
	}
	body := bytes.TrimRight(buf.Bytes(), "\n")
	if _, err := io.WriteString(w, "window.ITEM_NAMES = "); err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	_, err := io.WriteString(w, ";\n")
	return err
}
