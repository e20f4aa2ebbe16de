// pkg/constants/constants.go
package constants

//============== CACHE KEYS ==============

// Префиксы для ключей в Redis/кеше.
const (
	// Права роли.
	// Формат: auth:permissions:role:<roleID> -> JSON []string
	CacheKeyRolePermissions = "auth:permissions:role:%d"

	// Финансовая сводка по счетам за период.
	// Формат: reports:financial:<from>:<to> -> JSON dto.FinancialSummaryDTO
	CacheKeyFinancialSummary = "reports:financial:%s:%s"

	// Шаблон для удаления всех сводок разом.
	CacheKeyFinancialSummaryPattern = "reports:financial:*"
)

//============== HISTORY EVENTS ==============

const (
	HistoryEventCreate       = "CREATE"
	HistoryEventStatusChange = "STATUS_CHANGE"
	HistoryEventConversion   = "CONVERSION"
)

//============== DEFAULTS ==============

const (
	DefaultCurrency = "USD"
	DateLayout      = "2006-01-02"
	DateTimeLayout  = "2006-01-02 15:04:05"
)
