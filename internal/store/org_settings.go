package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const orgSettingsColumns = `organization_id, max_automation_emails_per_day, business_hours_start, business_hours_end,
business_days, timezone`

const sqlGetOrgSettings = `
SELECT ` + orgSettingsColumns + `
FROM organization_settings
WHERE organization_id = $1
`

// GetOrgSettings returns a tenant's automation settings or ErrNotFound
func (s *Store) GetOrgSettings(ctx context.Context, orgID uuid.UUID) (OrgSettings, error) {
	var settings OrgSettings
	err := s.db.GetContext(ctx, &settings, sqlGetOrgSettings, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrgSettings{}, ErrNotFound
		}
		return OrgSettings{}, fmt.Errorf("failed to get organization settings: %w", err)
	}
	return settings, nil
}

const sqlGetOrgSettingsByIDs = `
SELECT ` + orgSettingsColumns + `
FROM organization_settings
WHERE organization_id = ANY($1::uuid[])
`

// GetOrgSettingsByIDs loads settings in bulk; organizations without a row are absent from the map
func (s *Store) GetOrgSettingsByIDs(ctx context.Context, orgIDs []uuid.UUID) (map[uuid.UUID]OrgSettings, error) {
	result := make(map[uuid.UUID]OrgSettings, len(orgIDs))
	if len(orgIDs) == 0 {
		return result, nil
	}
	var rows []OrgSettings
	if err := s.db.SelectContext(ctx, &rows, sqlGetOrgSettingsByIDs, pq.Array(uuidStrings(orgIDs))); err != nil {
		return nil, fmt.Errorf("failed to get organization settings: %w", err)
	}
	for _, r := range rows {
		result[r.OrganizationID] = r
	}
	return result, nil
}
