package db

import (
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// ApplySort добавляет ORDER BY по разрешённым полям. allowedMap: поле запроса -> колонка БД.
// Неизвестные поля пропускаются. Если ни одно поле не подошло, применяется defaultOrder.
func ApplySort(builder sq.SelectBuilder, sortParams map[string]string, allowedMap map[string]string, defaultOrder ...string) sq.SelectBuilder {
	fields := make([]string, 0, len(sortParams))
	for field := range sortParams {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	orderBy := make([]string, 0, len(fields))
	for _, field := range fields {
		dbCol, ok := allowedMap[field]
		if !ok {
			continue
		}
		sqlDir := "ASC"
		if strings.ToLower(sortParams[field]) == "desc" {
			sqlDir = "DESC"
		}
		orderBy = append(orderBy, fmt.Sprintf("%s %s", dbCol, sqlDir))
	}

	if len(orderBy) == 0 {
		return builder.OrderBy(defaultOrder...)
	}
	return builder.OrderBy(orderBy...)
}
