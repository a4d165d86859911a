package core

// MonthSummary is the aggregate over expenses whose date falls in one
// calendar month. ByCategory is keyed by the stored category string, so
// legacy categories loaded from older files aggregate like any other.
type MonthSummary struct {
	Year       int
	Month      int // 1-12
	Total      Money
	ByCategory map[Category]Money
	Count      int
}
