package apiclient

import (
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormData_Encode(t *testing.T) {
	form := NewFormData().
		Add("storeName", "Ada's \"Kitchen\"").
		Add("businessCategory", "3").
		AddFile("idDocument", "id card.pdf", []byte("%PDF-1.4 id")).
		Add("storeName", "second")

	assert.Equal(t, 4, form.Len())
	v, ok := form.Value("storeName")
	assert.True(t, ok)
	assert.Equal(t, "Ada's \"Kitchen\"", v)
	assert.Equal(t, []string{"id card.pdf"}, form.Filenames("idDocument"))

	buf, contentType, err := form.encode()
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(buf, params["boundary"])

	type part struct{ name, filename, body string }
	var parts []part
	for {
		p, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		body, err := io.ReadAll(p)
		require.NoError(t, err)
		parts = append(parts, part{p.FormName(), p.FileName(), string(body)})
	}

	assert.Equal(t, []part{
		{"storeName", "", "Ada's \"Kitchen\""},
		{"businessCategory", "", "3"},
		{"idDocument", "id card.pdf", "%PDF-1.4 id"},
		{"storeName", "", "second"},
	}, parts)
}

func TestFormData_MissingValue(t *testing.T) {
	form := NewFormData().AddFile("idDocument", "a.pdf", nil)
	_, ok := form.Value("idDocument")
	assert.False(t, ok)
	assert.Nil(t, form.Filenames("productImage"))
}
