package repository

// ListOptions carries pagination and sorting for list queries. SortBy
// must already be an allow-listed column name by the time it reaches a
// repository.
type ListOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Offset returns the row offset for the current page.
func (o ListOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

// OrderClause renders the ORDER BY expression for the options.
func (o ListOptions) OrderClause() string {
	dir := "DESC"
	if o.SortOrder == "asc" {
		dir = "ASC"
	}
	return o.SortBy + " " + dir
}
