// Package keywords ranks the key phrases of a text with RAKE: candidate
// phrases are the runs of words between stopwords and punctuation, scored
// by word degree over word frequency.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

const DefaultTopK = 13

var (
	sentenceBoundary = regexp.MustCompile(`[.!?,;:\t\n\r\f()"\[\]]+`)
	wordPattern      = regexp.MustCompile(`[a-zA-Z0-9][a-zA-Z0-9'-]*`)
)

type Extractor struct {
	topK      int
	stopwords map[string]struct{}
}

func NewExtractor() *Extractor {
	return &Extractor{topK: DefaultTopK, stopwords: englishStopwords()}
}

// NewExtractorTopK is used where a different phrase count is wanted.
func NewExtractorTopK(topK int) *Extractor {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Extractor{topK: topK, stopwords: englishStopwords()}
}

// Extract returns the highest-ranked phrases of text, at most topK, best
// first. Deterministic: equal scores keep first-occurrence order.
func (e *Extractor) Extract(text string) []string {
	phrases := e.candidatePhrases(text)
	if len(phrases) == 0 {
		// empty, not nil: the chunk file format serializes this as []
		return []string{}
	}

	freq := map[string]float64{}
	degree := map[string]float64{}
	for _, phrase := range phrases {
		for _, word := range phrase {
			freq[word]++
			degree[word] += float64(len(phrase) - 1)
		}
	}

	type scored struct {
		text  string
		score float64
		order int
	}
	seen := map[string]struct{}{}
	ranked := make([]scored, 0, len(phrases))
	for i, phrase := range phrases {
		text := strings.Join(phrase, " ")
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		score := 0.0
		for _, word := range phrase {
			// degree includes co-occurring words only; add freq back so a
			// lone frequent word still scores 1.0 per mention
			score += (degree[word] + freq[word]) / freq[word]
		}
		ranked = append(ranked, scored{text: text, score: score, order: i})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].order < ranked[j].order
	})

	limit := e.topK
	if limit > len(ranked) {
		limit = len(ranked)
	}
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = ranked[i].text
	}
	return out
}

// candidatePhrases lower-cases the text, splits it at sentence punctuation,
// then breaks each fragment into maximal stopword-free word runs.
func (e *Extractor) candidatePhrases(text string) [][]string {
	var phrases [][]string
	for _, fragment := range sentenceBoundary.Split(strings.ToLower(text), -1) {
		var phrase []string
		for _, word := range wordPattern.FindAllString(fragment, -1) {
			if _, stop := e.stopwords[word]; stop {
				if len(phrase) > 0 {
					phrases = append(phrases, phrase)
					phrase = nil
				}
				continue
			}
			phrase = append(phrase, word)
		}
		if len(phrase) > 0 {
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}
