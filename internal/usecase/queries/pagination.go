package queries

import (
	"lendshare/internal/pkg/errs"
)

var ErrInvalidPaging = errs.Validation("invalid paging parameters")

// PageOffset turns from/size paging into a LIMIT/OFFSET pair. The offset
// snaps to the start of the page containing `from`, so from=7 size=5 reads
// the second page, not records 7..11.
func PageOffset(from, size int) (limit int32, offset int32, err error) {
	if from < 0 || size <= 0 {
		return 0, 0, ErrInvalidPaging
	}
	return int32(size), int32((from / size) * size), nil
}

// pageSlice applies the same page-snapping to an in-memory candidate list.
func pageSlice[T any](rows []T, from, size int) ([]T, error) {
	if from < 0 || size <= 0 {
		return nil, ErrInvalidPaging
	}
	offset := (from / size) * size
	if offset >= len(rows) {
		return []T{}, nil
	}
	end := offset + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}
