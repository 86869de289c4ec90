package database

import "gorm.io/gorm"

// Paginate runs a count and a page query over the same predicate.
// query must already carry its filters; order is applied to the page query only.
func Paginate[T any](query *gorm.DB, offset, limit int, order string, preloads ...string) ([]T, int64, error) {
	query = query.Model(new(T)).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := query
	for _, p := range preloads {
		rows = rows.Preload(p)
	}

	var items []T
	if err := rows.Order(order).Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
