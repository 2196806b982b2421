package contracts

import "strings"

// Order is a ranking sort direction
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder resolves a caller-supplied direction
// 빈 값이면 fallback (메트릭 기본 방향), "asc"가 아니면 내림차순
func ParseOrder(s string, fallback Order) Order {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return fallback
	case string(OrderAsc):
		return OrderAsc
	default:
		return OrderDesc
	}
}
