package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
)

// buildDOCX zips the given parts into an in-memory docx.
func buildDOCX(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for name, body := range parts {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

const manuscript = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Chapter One</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r><w:t xml:space="preserve">It was a </w:t></w:r><w:r><w:t>dark night.</w:t></w:r></w:p>
<w:p><w:r><w:t>Name</w:t><w:tab/><w:t>Role</w:t></w:r></w:p>
<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>
</w:body>
</w:document>`

func TestNew(t *testing.T) {
	n := New()
	var _ driven.Normaliser = n
	assert.Equal(t, []string{".docx"}, n.SupportedExtensions())
	assert.Equal(t, []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document"}, n.SupportedMIMETypes())
	assert.Equal(t, 50, n.Priority())
}

func TestNormalise_Paragraphs(t *testing.T) {
	raw := &domain.RawText{
		URI:     "/books/the_long_night.docx",
		Content: buildDOCX(t, map[string]string{"word/document.xml": manuscript}),
	}

	out, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "docx", out.Format)
	assert.Equal(t, "the long night", out.Title)
	assert.Equal(t, "Chapter One\n\nIt was a dark night.\n\nName Role\n\nLine one\nLine two", out.Text)
}

func TestNormalise_CoreTitle(t *testing.T) {
	raw := &domain.RawText{
		URI: "draft.docx",
		Content: buildDOCX(t, map[string]string{
			"word/document.xml": manuscript,
			"docProps/core.xml": `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title> The Long Night </dc:title></cp:coreProperties>`,
		}),
	}

	out, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "The Long Night", out.Title)
}

func TestNormalise_Errors(t *testing.T) {
	ctx := context.Background()
	n := New()

	_, err := n.Normalise(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = n.Normalise(ctx, &domain.RawText{URI: "x.docx", Content: []byte("not a zip")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = n.Normalise(ctx, &domain.RawText{URI: "x.docx", Content: buildDOCX(t, map[string]string{"other.xml": "<a/>"})})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "word/document.xml")

	_, err = n.Normalise(ctx, &domain.RawText{URI: "x.docx", Content: buildDOCX(t, map[string]string{"word/document.xml": "<w:document><w:body>"})})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParagraphs_Empty(t *testing.T) {
	text, err := paragraphs([]byte(`<w:document xmlns:w="x"><w:body><w:p/><w:p><w:r><w:t> </w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	assert.Empty(t, text)
}
