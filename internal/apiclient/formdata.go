package apiclient

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// FormData is an ordered multipart payload of text fields and file parts.
// Repeated names are kept as separate parts.
type FormData struct {
	parts []formPart
}

type formPart struct {
	name     string
	value    string
	filename string
	content  []byte
	file     bool
}

// NewFormData creates an empty multipart payload
func NewFormData() *FormData {
	return &FormData{}
}

// Add appends a text field
func (f *FormData) Add(name, value string) *FormData {
	f.parts = append(f.parts, formPart{name: name, value: value})
	return f
}

// AddFile appends a file part
func (f *FormData) AddFile(name, filename string, content []byte) *FormData {
	f.parts = append(f.parts, formPart{name: name, filename: filename, content: content, file: true})
	return f
}

// Value returns the first text value stored under name
func (f *FormData) Value(name string) (string, bool) {
	for _, p := range f.parts {
		if !p.file && p.name == name {
			return p.value, true
		}
	}
	return "", false
}

// Filenames returns the filenames of the file parts stored under name, in order
func (f *FormData) Filenames(name string) []string {
	var names []string
	for _, p := range f.parts {
		if p.file && p.name == name {
			names = append(names, p.filename)
		}
	}
	return names
}

// Len returns the number of parts
func (f *FormData) Len() int {
	return len(f.parts)
}

// encode writes the payload and returns it with the content type carrying the encoder's boundary
func (f *FormData) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, p := range f.parts {
		if !p.file {
			if err := w.WriteField(p.name, p.value); err != nil {
				return nil, "", fmt.Errorf("failed to write field %s: %w", p.name, err)
			}
			continue
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(p.name), escapeQuotes(p.filename)))
		h.Set("Content-Type", http.DetectContentType(p.content))

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part %s: %w", p.name, err)
		}
		if _, err := part.Write(p.content); err != nil {
			return nil, "", fmt.Errorf("failed to write file part %s: %w", p.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
