package gateway

import (
	"context"
	"strings"

	"github.com/sgou-dev/sgou-chatbot-go/internal/models"
	"github.com/sgou-dev/sgou-chatbot-go/internal/stringutil"
)

// FetchRegionalCenters returns the regional center collection.
func (c *Client) FetchRegionalCenters(ctx context.Context) ([]models.RegionalCenter, error) {
	return cachedList(ctx, c, sourceCenters, c.fetchRegionalCenters)
}

func (c *Client) fetchRegionalCenters(ctx context.Context) ([]models.RegionalCenter, error) {
	payload, err := c.getJSON(ctx, sourceCenters, pathCenters)
	if err != nil {
		return nil, err
	}

	items := pickList(payload, "rc", "centers", "centres", "data")
	centers := make([]models.RegionalCenter, 0, len(items))
	for _, obj := range items {
		centers = append(centers, models.RegionalCenter{
			ID:        firstInt(obj, "id", "rc_id", "rcid"),
			Name:      firstString(obj, "rcname", "name", "rc_name", "center_name"),
			Address:   firstString(obj, "address", "rc_address", "location"),
			HeadName:  firstString(obj, "head_name", "director", "head"),
			HeadPhone: firstString(obj, "head_phone", "phone", "contact_number", "contact"),
			HeadEmail: firstString(obj, "head_email", "email"),
		})
	}

	c.log.WithField("count", len(centers)).Debug("fetched regional centers")
	return centers, nil
}

// FetchLSCs returns learning support centers with their owning regional
// center name resolved. When filterByCenterName is non-empty only LSCs whose
// resolved center name matches the cleaned key are returned.
//
// Resolution needs the regional center collection; if that fetch fails the
// LSCs are still returned with the name left as the blank sentinel.
func (c *Client) FetchLSCs(ctx context.Context, filterByCenterName string) ([]models.LearningSupportCenter, error) {
	lscs, err := cachedList(ctx, c, sourceLSCs, c.fetchLSCs)
	if err != nil {
		return nil, err
	}

	names := map[int]string{}
	if centers, err := c.FetchRegionalCenters(ctx); err == nil {
		for _, rc := range centers {
			names[rc.ID] = rc.Name
		}
	}

	resolved := make([]models.LearningSupportCenter, 0, len(lscs))
	for _, lsc := range lscs {
		if name, ok := names[lsc.CenterID]; ok && name != "" {
			lsc.CenterName = name
		} else {
			lsc.CenterName = blankSentinel
		}
		resolved = append(resolved, lsc)
	}

	if filterByCenterName == "" {
		return resolved, nil
	}

	key := stringutil.CleanCenterKey(filterByCenterName)
	filtered := make([]models.LearningSupportCenter, 0, len(resolved))
	for _, lsc := range resolved {
		if strings.Contains(stringutil.CleanCenterKey(lsc.CenterName), key) {
			filtered = append(filtered, lsc)
		}
	}
	return filtered, nil
}

func (c *Client) fetchLSCs(ctx context.Context) ([]models.LearningSupportCenter, error) {
	payload, err := c.getJSON(ctx, sourceLSCs, pathLSCs)
	if err != nil {
		return nil, err
	}

	items := pickList(payload, "lsc", "lscs", "data")
	lscs := make([]models.LearningSupportCenter, 0, len(items))
	for _, obj := range items {
		lscs = append(lscs, models.LearningSupportCenter{
			Name:             firstString(obj, "lscname", "name", "lsc_name", "center_name"),
			Address:          firstString(obj, "address", "location"),
			ContactNumber:    firstString(obj, "contact_number", "phone", "contact"),
			CoordinatorName:  firstString(obj, "coordinator_name", "coordinator"),
			CoordinatorEmail: firstString(obj, "coordinator_email", "email"),
			CenterID:         firstInt(obj, "rc", "rc_id", "regional_center", "center_id"),
		})
	}

	c.log.WithField("count", len(lscs)).Debug("fetched learning support centers")
	return lscs, nil
}
