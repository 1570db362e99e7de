package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	rows, err := ParseSeed(`
[pages.home_page]
hero_title = "Welcome"
cta = "Start"

[pages.book_consultation_page]
hero_title = "Book a call"
`)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "book_consultation_page", rows[0].PageKey)
	assert.Equal(t, "Book a call", rows[0].Value)
	assert.Equal(t, "cta", rows[1].ElementKey)
	assert.Equal(t, "Welcome", rows[2].Value)
}

func TestParseSeed_Invalid(t *testing.T) {
	_, err := ParseSeed("[pages.home_page]\nhero_title = ")
	require.Error(t, err)

	_, err = ParseSeed("[pages.home_page]\nhero_title = 3")
	require.Error(t, err)
}

func TestFallbackSeed(t *testing.T) {
	rows := FallbackSeed(BookConsultationPage)
	require.Len(t, rows, len(FallbackKeys()))
	for _, r := range rows {
		assert.Equal(t, BookConsultationPage, r.PageKey)
	}
	assert.Empty(t, FallbackSeed("unknown_page"))
}
