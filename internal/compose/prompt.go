package compose

import (
	"fmt"
	"strings"

	"github.com/sgou-dev/sgou-chatbot-go/internal/models"
)

// SystemPrompt is the oracle persona with the answer-formatting rules. The
// website link conditions and the exact anchor markup are part of the
// contract with the web client.
func SystemPrompt(websiteURL string) string {
	return "You are an expert assistant for Sreenarayanaguru Open University. " +
		"Your primary goal is to provide accurate and concise information about the university's programs and general inquiries. " +
		"For general responses, provide information in clear paragraphs without numbering. " +
		"Only use numbered lists when specifically listing academic programs. " +
		"IMPORTANT: Include the website link ONLY when: 1) Information is incomplete or inaccurate, " +
		"2) Response would be too large without summarization, " +
		"3) User specifically asks about centers, admissions, or program details, or " +
		"4) When suggesting official resources. " +
		"Use EXACTLY this HTML format: " + WebsiteLink(websiteURL) + ". " +
		"Do not use markdown links. Use the HTML format provided above. " +
		"When listing programs, follow these rules strictly:\n" +
		"1. Each program MUST be on its own line with a line break after EVERY program\n" +
		"2. Use sequential numbering (1., 2., 3., etc.) followed by exactly one space\n" +
		"3. No paragraphs or grouping - each program gets its own line\n\n" +
		"Never combine programs or remove line breaks. " +
		"For general responses about who you are or other information, use natural paragraphs without numbering."
}

// BuildOraclePrompt assembles the user-side prompt for an open-ended query.
// Only the minimal relevant data travels with the question: programme names
// when the catalogue was fetched, nothing else.
func BuildOraclePrompt(query string, programs []models.Program) string {
	var b strings.Builder
	if len(programs) > 0 {
		b.WriteString("Here are the university's current programmes:\n")
		for i, p := range programs {
			fmt.Fprintf(&b, "%d. %s\n", i+1, p.Name)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "User question: %s\n", query)
	b.WriteString("Format your response appropriately - use paragraphs for general information and numbered lists only for programs.")
	return b.String()
}
