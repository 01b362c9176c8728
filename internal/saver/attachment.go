package saver

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
)

// Attachment hands the bytes to an HTTP client as a file download.
// It is the server-side counterpart of a browser "save as".
type Attachment struct {
	w http.ResponseWriter
}

// NewAttachment creates a saver that writes to w.
func NewAttachment(w http.ResponseWriter) *Attachment {
	return &Attachment{w: w}
}

// SaveBytes writes data as the response body with attachment headers.
func (a *Attachment) SaveBytes(filename string, data []byte) error {
	name, err := CleanFilename(filename)
	if err != nil {
		return err
	}

	h := a.w.Header()
	h.Set("Content-Type", http.DetectContentType(data))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	a.w.WriteHeader(http.StatusOK)

	if _, err := a.w.Write(data); err != nil {
		return fmt.Errorf("failed to write attachment %s: %w", name, err)
	}

	return nil
}
