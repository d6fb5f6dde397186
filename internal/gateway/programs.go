package gateway

import (
	"context"

	"github.com/sgou-dev/sgou-chatbot-go/internal/models"
)

// FetchPrograms returns the programme catalogue.
func (c *Client) FetchPrograms(ctx context.Context) ([]models.Program, error) {
	return cachedList(ctx, c, sourcePrograms, c.fetchPrograms)
}

func (c *Client) fetchPrograms(ctx context.Context) ([]models.Program, error) {
	payload, err := c.getJSON(ctx, sourcePrograms, pathPrograms)
	if err != nil {
		return nil, err
	}

	items := pickList(payload, "programme", "programs", "data")
	programs := make([]models.Program, 0, len(items))
	for _, obj := range items {
		programs = append(programs, models.Program{
			Name:        firstString(obj, "pgm_name", "name", "programme_name", "program_name"),
			Category:    firstString(obj, "pgm_category", "category_name", "category"),
			Duration:    firstString(obj, "pgm_year", "duration", "years"),
			Description: firstString(obj, "pgm_desc", "description", "desc"),
			Fee:         firstString(obj, "fee_structure", "fee", "fees"),
			Code:        firstString(obj, "pgm_code", "code"),
		})
	}

	c.log.WithField("count", len(programs)).Debug("fetched programmes")
	return programs, nil
}
