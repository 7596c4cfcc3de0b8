package utils

// NormalizeOffsetLimit clamps pagination parameters.
// Negative offsets become 0; limits outside (0, max] fall back to max.
func NormalizeOffsetLimit(offset, limit, max int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > max {
		limit = max
	}
	return offset, limit
}
