package domain

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Page is one slice of a paginated collection together with the collection size.
type Page[T any] struct {
	Total int64
	Skip  int
	Limit int
	Items []T
}
