package pageloader

const (
	MaxPageSize     = 100
	DefaultPageSize = 10
)

// IsNormalizedPageSizeMax returns the page size clamped to (0, maxPageSize]
// and whether it was already within bounds.
func IsNormalizedPageSizeMax(pageSize int, maxPageSize int) (int, bool) {
	if pageSize <= 0 {
		return DefaultPageSize, false
	} else if pageSize > maxPageSize {
		return maxPageSize, false
	}

	return pageSize, true
}

func NormalizePageSizeMax(pageSize int, maxPageSize int) int {
	ret, _ := IsNormalizedPageSizeMax(pageSize, maxPageSize)
	return ret
}

func NormalizePageSize(pageSize int) int {
	return NormalizePageSizeMax(pageSize, MaxPageSize)
}
