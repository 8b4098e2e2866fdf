package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmptyText(t *testing.T) {
	// Empty but never nil: chunk files must serialize top_keywords as [].
	e := NewExtractor()
	assert.Equal(t, []string{}, e.Extract(""))
	assert.Equal(t, []string{}, e.Extract("the and of to"))
}

func TestExtractSplitsOnStopwords(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("data protection is a fundamental right")

	// "is" and "a" are stopwords, so two candidate phrases remain.
	require.Len(t, got, 2)
	assert.Contains(t, got, "data protection")
	assert.Contains(t, got, "fundamental right")
}

func TestExtractMultiWordPhrasesRankHigher(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("personal data processing requires consent. consent matters.")

	require.NotEmpty(t, got)
	// The three-word phrase scores degree+freq over freq per word, so it
	// must outrank the lone repeated word.
	assert.Equal(t, "personal data processing requires consent", got[0])
}

func TestExtractDeduplicates(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("breach notification. breach notification. breach notification.")

	assert.Equal(t, []string{"breach notification"}, got)
}

func TestExtractTopKBound(t *testing.T) {
	e := NewExtractorTopK(3)
	got := e.Extract("encryption, pseudonymization, retention, deletion, portability, transparency, accountability")

	assert.Len(t, got, 3)
}

func TestExtractDeterministic(t *testing.T) {
	e := NewExtractor()
	text := "controllers notify supervisory authorities. processors assist controllers. data subjects exercise rights."

	first := e.Extract(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Extract(text))
	}
}

func TestExtractLowercasesCandidates(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("Breach Notification")

	assert.Equal(t, []string{"breach notification"}, got)
}

func TestNewExtractorTopKRejectsNonPositive(t *testing.T) {
	e := NewExtractorTopK(0)
	assert.Equal(t, DefaultTopK, e.topK)
}
