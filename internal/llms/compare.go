package llms

import (
	"fmt"
	"strings"

	"github.com/praveen-raj-m/compliance-ai/internal/chunk"
	"github.com/praveen-raj-m/compliance-ai/internal/utils"
)

const (
	// compareMaxArticles caps the regulation side of the comparison prompt
	// to keep the context length workable for local models.
	compareMaxArticles = 20

	compareTextChars    = 300
	compareKeywordCount = 5
)

// BuildComparePrompt frames a full policy-vs-regulation comparison for the
// LLM: the company policy clauses, the regulation articles with their key
// phrases, and a strict covered/partial/missing output format.
func BuildComparePrompt(company, regulation []chunk.Chunk, regSource string) string {
	var companySections []string
	for _, c := range company {
		companySections = append(companySections,
			fmt.Sprintf("%s\n%s", c.Title, utils.Truncate(c.FullText, compareTextChars)))
	}

	var regulationSections []string
	for i, r := range regulation {
		if i >= compareMaxArticles {
			break
		}
		keywords := r.TopKeywords
		if len(keywords) > compareKeywordCount {
			keywords = keywords[:compareKeywordCount]
		}
		regulationSections = append(regulationSections,
			fmt.Sprintf("Article %s: %s\nKeywords: %s", r.ArticleID, r.Title, strings.Join(keywords, ", ")))
	}

	var b strings.Builder
	b.WriteString("You are a compliance and risk analysis AI.\n\n")
	b.WriteString("### TASK\n")
	b.WriteString("Compare the COMPANY POLICY against the regulation " + regSource + ". For each article, decide:\n\n")
	b.WriteString("- Is the requirement covered by the policy? Covered / Partial / Missing\n")
	b.WriteString("- If Missing or Partial, what is the potential RISK to the organization?\n")
	b.WriteString("- Suggest practical MITIGATION steps for each uncovered or partially covered requirement.\n\n")
	b.WriteString("Be strict and specific. Do NOT say \"everything is covered\" unless justified.\n\n")
	b.WriteString("### COMPANY POLICY\n")
	b.WriteString(strings.Join(companySections, "\n\n"))
	b.WriteString("\n\n### REGULATION: " + regSource + "\n")
	b.WriteString(strings.Join(regulationSections, "\n\n"))
	b.WriteString("\n\n### OUTPUT FORMAT:\n")
	b.WriteString("- Article X: Covered / Partial / Missing\n")
	b.WriteString("  Risk: [short risk if partial/missing]\n")
	b.WriteString("  Mitigation: [specific recommended fix]\n\n")
	b.WriteString("Start your analysis below.")
	return b.String()
}
