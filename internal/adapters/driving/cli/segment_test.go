package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

func TestSegmentCmd_Defaults(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, strings.NewReader("First paragraph here.\n\nSecond one."), "segment")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] (")
	assert.Contains(t, out, "First paragraph here.")
	assert.Contains(t, out, "5 words, about 1 min (By Paragraph, 250 words)")
}

func TestSegmentCmd_CustomLength(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	text := strings.Repeat("word ", 120)
	out, err := execute(t, strings.NewReader(text), "segment", "--method", "custom", "--length", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] (50 words)")
	assert.Contains(t, out, "[3] (20 words)")
	assert.Contains(t, out, "3 segments, 120 words")
	assert.Contains(t, out, "By Custom Length, 50 words")
}

func TestSegmentCmd_UsesSettings(t *testing.T) {
	svc, cleanup := setupTestServices(t)
	defer cleanup()
	require.NoError(t, svc.Settings.Set("segment.method", "custom"))
	require.NoError(t, svc.Settings.Set("segment.length", "50"))

	out, err := execute(t, strings.NewReader(strings.Repeat("w ", 60)), "segment")
	require.NoError(t, err)
	assert.Contains(t, out, "2 segments, 60 words")
}

func TestSegmentCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, strings.NewReader(strings.Repeat("w ", 60)), "segment", "-m", "custom", "-l", "50", "--json")
	require.NoError(t, err)

	var segments []domain.Segment
	require.NoError(t, json.Unmarshal([]byte(out), &segments))
	require.Len(t, segments, 2)
	assert.Equal(t, 0, segments[0].Position)
	assert.Equal(t, 10, segments[1].Words)
	assert.NotEmpty(t, segments[0].ID)
}

func TestSegmentCmd_EmptyInputJSON(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, strings.NewReader("   "), "segment", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestSegmentCmd_InvalidLength(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, strings.NewReader("text"), "segment", "--length", "260")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSegmentCmd_CleanFirst(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, strings.NewReader("a    b"), "segment", "--clean")
	require.NoError(t, err)
	assert.Contains(t, out, "a b\n")
	assert.NotContains(t, out, "a    b")
}
