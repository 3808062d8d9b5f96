package db

import (
	"context"

	"gorm.io/gorm"
)

type countRow struct {
	GroupKey uint
	Total    int64
}

// countBy groups rows of model by column and returns column value -> count.
// Optional scopes narrow the rows counted.
func countBy(ctx context.Context, model any, column string, scopes ...func(*gorm.DB) *gorm.DB) (map[uint]int64, error) {
	var rows []countRow
	err := DB.WithContext(ctx).
		Model(model).
		Scopes(scopes...).
		Select(column + " AS group_key, COUNT(*) AS total").
		Where(column + " IS NOT NULL").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.GroupKey] = r.Total
	}
	return counts, nil
}
