package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const sqlGetActiveABTestByRule = `
SELECT id, rule_id, name, is_active, created_at
FROM automation_ab_tests
WHERE rule_id = $1 AND is_active = TRUE
ORDER BY created_at DESC
LIMIT 1
`

const sqlGetActiveABVariantsByTest = `
SELECT id, ab_test_id, label, template_id, subject_override, weight, is_active
FROM automation_ab_variants
WHERE ab_test_id = $1 AND is_active = TRUE
ORDER BY label ASC
`

// GetActiveABTest returns the rule's active test with its active variants
func (s *Store) GetActiveABTest(ctx context.Context, ruleID uuid.UUID) (ABTest, error) {
	var test ABTest
	err := s.db.GetContext(ctx, &test, sqlGetActiveABTestByRule, ruleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ABTest{}, ErrNotFound
		}
		return ABTest{}, fmt.Errorf("failed to get ab test: %w", err)
	}

	if err := s.db.SelectContext(ctx, &test.Variants, sqlGetActiveABVariantsByTest, test.ID); err != nil {
		return ABTest{}, fmt.Errorf("failed to get ab test variants: %w", err)
	}
	return test, nil
}

const sqlGetABVariantsByIDs = `
SELECT id, ab_test_id, label, template_id, subject_override, weight, is_active
FROM automation_ab_variants
WHERE id = ANY($1::uuid[])
`

// GetABVariantsByIDs loads variants in bulk, keyed by id
func (s *Store) GetABVariantsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ABVariant, error) {
	result := make(map[uuid.UUID]ABVariant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var variants []ABVariant
	if err := s.db.SelectContext(ctx, &variants, sqlGetABVariantsByIDs, pq.Array(uuidStrings(ids))); err != nil {
		return nil, fmt.Errorf("failed to get ab variants: %w", err)
	}
	for _, v := range variants {
		result[v.ID] = v
	}
	return result, nil
}
