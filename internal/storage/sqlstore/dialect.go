package sqlstore

// Dialect holds the SQL that differs between backends.
type Dialect struct {
	Name string
	// Placeholder returns the bind marker for the n-th (1-based) argument.
	Placeholder func(n int) string
	// Contains returns a predicate that is true when column contains the
	// case-folded bind parameter param.
	Contains func(column, param string) string
	// OrderBy returns an ORDER BY term with byte-wise ordering of column.
	OrderBy func(column string) string
	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation func(err error) bool
}
