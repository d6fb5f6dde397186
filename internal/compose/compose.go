// Package compose renders the deterministic user-facing replies.
//
// Structural answers (listings, detail blocks, field values, canned FAQ
// answers) are produced here from already-fetched data with no network
// access, so every message in this package is reproducible in tests. The
// only non-deterministic replies in the service come from the oracle, and
// even those start from a prompt built in prompt.go.
//
// Replies are HTML fragments: the web client renders them directly, and the
// official-website link must use one exact anchor style.
package compose

import (
	"fmt"
	"html"
	"strings"

	"github.com/sgou-dev/sgou-chatbot-go/internal/models"
)

// Fixed corrective and apology messages.
const (
	MsgEmptyQuery = "Please enter a query."

	// MsgUpstreamDown is the apology for a failed university API call.
	// No oracle call is made on this path.
	MsgUpstreamDown = "Sorry, unable to fetch university data now."

	MsgNoListPresent = "There is no programme list to pick from. Ask me to list the programmes first."

	MsgOutOfRange = "That number is not in the last list I showed. Please ask for the programme list again."

	MsgNoProgramMatch = "Sorry, I couldn't find a programme by that name. Could you check the spelling or ask me to list all programmes?"

	MsgAskFeeProgram = "Which programme's fee would you like to know? Please reply with the programme name."
)

// WebsiteLink renders the official website as the one sanctioned anchor
// style. The web client depends on this exact markup.
func WebsiteLink(url string) string {
	return fmt.Sprintf(`<a href="%s" target="_blank" style="color: #0066cc; text-decoration: underline;">%s</a>`, url, url)
}

// Rephrase is the fallback when neither the FAQ corpus nor the oracle
// produced an answer.
func Rephrase(websiteURL string) string {
	return "Sorry, I couldn't find an answer to that. Could you rephrase your question, or visit " +
		WebsiteLink(websiteURL) + " for more information?"
}

// ProgramList renders an ordered listing, one programme per item.
func ProgramList(programs []models.Program) string {
	var b strings.Builder
	b.WriteString("<ol>")
	for _, p := range programs {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(p.Name))
		b.WriteString("</li>")
	}
	b.WriteString("</ol>")
	return b.String()
}

// ProgramListWithPrompt renders a listing followed by a numbered-pick
// instruction, for replies whose list is stored for numeric follow-up.
func ProgramListWithPrompt(heading string, programs []models.Program) string {
	return fmt.Sprintf("%s%s<p>Reply with a number to see details of that programme.</p>",
		heading, ProgramList(programs))
}

// ProgramDetail renders the full attribute block for one programme.
func ProgramDetail(p models.Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b><br>", html.EscapeString(p.Name))
	fmt.Fprintf(&b, "Category: %s<br>", html.EscapeString(p.Category))
	fmt.Fprintf(&b, "Duration: %s<br>", html.EscapeString(p.Duration))
	fmt.Fprintf(&b, "Fee: %s<br>", html.EscapeString(p.Fee))
	fmt.Fprintf(&b, "Description: %s", html.EscapeString(p.Description))
	return b.String()
}

// FieldValue renders a single requested attribute of a programme.
func FieldValue(p models.Program, field string) string {
	var value string
	switch field {
	case "category":
		value = p.Category
	case "duration":
		value = p.Duration
	case "description":
		value = p.Description
	default:
		return ProgramDetail(p)
	}
	return fmt.Sprintf("The %s of %s is %s.", field, html.EscapeString(p.Name), html.EscapeString(value))
}

// FeeAnswer renders the fee of one programme.
func FeeAnswer(p models.Program) string {
	return fmt.Sprintf("The fee for %s is %s.", html.EscapeString(p.Name), html.EscapeString(p.Fee))
}

// ProgramCount renders the catalogue size.
func ProgramCount(n int) string {
	if n == 1 {
		return "The university currently offers 1 programme."
	}
	return fmt.Sprintf("The university currently offers %d programmes.", n)
}

// ClarificationPrompt asks the yes/no honours disambiguation question.
// plainName is the non-Honours variant's name.
func ClarificationPrompt(plainName string) string {
	return fmt.Sprintf("Are you asking about the Honours version of %s? Please reply yes or no.",
		html.EscapeString(plainName))
}

// CenterList renders all regional centers with contact details.
func CenterList(centers []models.RegionalCenter) string {
	if len(centers) == 0 {
		return "No regional centers are listed at the moment."
	}
	var b strings.Builder
	b.WriteString("<b>Regional Centers</b><ol>")
	for _, rc := range centers {
		fmt.Fprintf(&b, "<li><b>%s</b><br>Address: %s<br>Head: %s<br>Phone: %s<br>Email: %s</li>",
			html.EscapeString(rc.Name),
			html.EscapeString(rc.Address),
			html.EscapeString(rc.HeadName),
			html.EscapeString(rc.HeadPhone),
			html.EscapeString(rc.HeadEmail))
	}
	b.WriteString("</ol>")
	return b.String()
}

// LSCList renders learning support centers with their owning regional
// center name.
func LSCList(lscs []models.LearningSupportCenter) string {
	if len(lscs) == 0 {
		return "No learning support centers are listed at the moment."
	}
	var b strings.Builder
	b.WriteString("<b>Learning Support Centers</b><ol>")
	for _, lsc := range lscs {
		fmt.Fprintf(&b, "<li><b>%s</b><br>Regional Center: %s<br>Address: %s<br>Coordinator: %s<br>Contact: %s</li>",
			html.EscapeString(lsc.Name),
			html.EscapeString(lsc.CenterName),
			html.EscapeString(lsc.Address),
			html.EscapeString(lsc.CoordinatorName),
			html.EscapeString(lsc.ContactNumber))
	}
	b.WriteString("</ol>")
	return b.String()
}

// LSCUnderCenter renders the LSCs of one resolved regional center. The
// heading always shows the resolved center name.
func LSCUnderCenter(centerName string, lscs []models.LearningSupportCenter) string {
	if len(lscs) == 0 {
		return fmt.Sprintf("No learning support centers found under %s.", html.EscapeString(centerName))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Learning Support Centers under %s</b><ol>", html.EscapeString(centerName))
	for _, lsc := range lscs {
		fmt.Fprintf(&b, "<li><b>%s</b><br>Address: %s<br>Coordinator: %s<br>Contact: %s</li>",
			html.EscapeString(lsc.Name),
			html.EscapeString(lsc.Address),
			html.EscapeString(lsc.CoordinatorName),
			html.EscapeString(lsc.ContactNumber))
	}
	b.WriteString("</ol>")
	return b.String()
}

// FAQAnswer passes a matched corpus answer through unmodified.
func FAQAnswer(entry models.FAQEntry) string {
	return entry.Answer
}
