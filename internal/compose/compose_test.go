package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sgou-dev/sgou-chatbot-go/internal/models"
)

func TestProgramListItemCount(t *testing.T) {
	programs := []models.Program{
		{Name: "BA History"},
		{Name: "BCA"},
		{Name: "MSc Zoology"},
		{Name: "BA History (Honours)"},
	}

	out := ProgramList(programs)

	// Every programme becomes exactly one list item.
	assert.Equal(t, len(programs), strings.Count(out, "<li>"))
	assert.Equal(t, len(programs), strings.Count(out, "</li>"))
	assert.True(t, strings.HasPrefix(out, "<ol>"))
	assert.True(t, strings.HasSuffix(out, "</ol>"))
	for _, p := range programs {
		assert.Contains(t, out, p.Name)
	}
}

func TestProgramListEscapesNames(t *testing.T) {
	out := ProgramList([]models.Program{{Name: "B<A> & History"}})
	assert.Contains(t, out, "B&lt;A&gt; &amp; History")
	assert.Equal(t, 1, strings.Count(out, "<li>"))
}

func TestProgramListWithPrompt(t *testing.T) {
	out := ProgramListWithPrompt("<p>Matching programmes:</p>", []models.Program{{Name: "BCA"}})
	assert.Contains(t, out, "Matching programmes:")
	assert.Contains(t, out, "<li>BCA</li>")
	assert.Contains(t, out, "Reply with a number")
}

func TestWebsiteLinkMarkup(t *testing.T) {
	out := WebsiteLink("https://sgou.ac.in")
	assert.Equal(t,
		`<a href="https://sgou.ac.in" target="_blank" style="color: #0066cc; text-decoration: underline;">https://sgou.ac.in</a>`,
		out)
}

func TestFieldValue(t *testing.T) {
	p := models.Program{
		Name:        "BA History",
		Category:    "UG",
		Duration:    "3",
		Description: "History degree",
	}

	assert.Equal(t, "The duration of BA History is 3.", FieldValue(p, "duration"))
	assert.Equal(t, "The category of BA History is UG.", FieldValue(p, "category"))
	assert.Equal(t, "The description of BA History is History degree.", FieldValue(p, "description"))

	// Unknown fields fall back to the full detail block.
	assert.Contains(t, FieldValue(p, "mode"), "<b>BA History</b>")
}

func TestFeeAnswer(t *testing.T) {
	out := FeeAnswer(models.Program{Name: "BCA", Fee: "15000"})
	assert.Equal(t, "The fee for BCA is 15000.", out)
}

func TestProgramCount(t *testing.T) {
	assert.Equal(t, "The university currently offers 1 programme.", ProgramCount(1))
	assert.Equal(t, "The university currently offers 42 programmes.", ProgramCount(42))
}

func TestClarificationPrompt(t *testing.T) {
	out := ClarificationPrompt("BA History")
	assert.Equal(t, "Are you asking about the Honours version of BA History? Please reply yes or no.", out)
}

func TestLSCUnderCenterShowsResolvedName(t *testing.T) {
	lscs := []models.LearningSupportCenter{
		{Name: "LSC Aluva", Address: "Aluva", CoordinatorName: "N/A", ContactNumber: "N/A"},
	}
	out := LSCUnderCenter("Regional Centre - Kochi", lscs)
	assert.Contains(t, out, "Learning Support Centers under Regional Centre - Kochi")
	assert.Contains(t, out, "LSC Aluva")

	empty := LSCUnderCenter("Regional Centre - Kochi", nil)
	assert.Contains(t, empty, "No learning support centers found under Regional Centre - Kochi.")
}

func TestCenterListEmpty(t *testing.T) {
	assert.Equal(t, "No regional centers are listed at the moment.", CenterList(nil))
}

func TestBuildOraclePrompt(t *testing.T) {
	out := BuildOraclePrompt("who are you", []models.Program{{Name: "BA History"}, {Name: "BCA"}})
	assert.Contains(t, out, "1. BA History\n")
	assert.Contains(t, out, "2. BCA\n")
	assert.Contains(t, out, "User question: who are you")

	// Without catalogue data the prompt carries only the question.
	bare := BuildOraclePrompt("who are you", nil)
	assert.NotContains(t, bare, "programmes:")
	assert.Contains(t, bare, "User question: who are you")
}

func TestSystemPromptCarriesLinkFormat(t *testing.T) {
	out := SystemPrompt("https://sgou.ac.in")
	assert.Contains(t, out, "Sreenarayanaguru Open University")
	assert.Contains(t, out, WebsiteLink("https://sgou.ac.in"))
	assert.Contains(t, out, "Do not use markdown links.")
}
