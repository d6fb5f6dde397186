package gateway

import (
	"context"

	"github.com/sgou-dev/sgou-chatbot-go/internal/models"
)

// FetchFAQCorpus returns the canned question/answer corpus. Entries without
// a real question text are dropped because nothing could ever match them.
func (c *Client) FetchFAQCorpus(ctx context.Context) ([]models.FAQEntry, error) {
	return cachedList(ctx, c, sourceFAQ, c.fetchFAQCorpus)
}

func (c *Client) fetchFAQCorpus(ctx context.Context) ([]models.FAQEntry, error) {
	payload, err := c.getJSON(ctx, sourceFAQ, pathFAQ)
	if err != nil {
		return nil, err
	}

	items := pickList(payload, "question", "questions", "faqs", "data")
	entries := make([]models.FAQEntry, 0, len(items))
	for _, obj := range items {
		q := firstString(obj, "question", "faq_question", "q")
		if q == blankSentinel {
			continue
		}
		entries = append(entries, models.FAQEntry{
			Question: q,
			Answer:   firstString(obj, "answer", "faq_answer", "a"),
			Keywords: stringList(obj["keywords"]),
		})
	}

	c.log.WithField("count", len(entries)).Debug("fetched FAQ corpus")
	return entries, nil
}
