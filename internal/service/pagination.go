package service

import "time"

const (
	cacheListTTL  = 2 * time.Hour
	cacheCountTTL = 30 * time.Minute
)

// pageOffset clamps page to 1-based and converts it to a row offset.
func pageOffset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
