package models

import "math"

// SortAsc is the only sort value that orders jobs oldest first.
const SortAsc = "asc"

const (
	// DefaultPage is the page returned when none (or an invalid one) is requested.
	DefaultPage = 1
	// DefaultLimit is the page size used when none (or an invalid one) is requested.
	DefaultLimit = 10
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// ListJobsQuery carries the search, filter, sort and pagination parameters
// of a job listing. The owner is passed separately and never comes from
// the client.
type ListJobsQuery struct {
	// Search is matched case-insensitively as a substring of position or company.
	Search string
	// Status is an exact JobStatus; empty or "all" disables the filter.
	Status string
	// Sort is "asc" for ascending application date; anything else is descending.
	Sort string
	// Page is 1-indexed.
	Page int
	// Limit is the page size.
	Limit int
}

// Normalize applies defaults and bounds to Page and Limit.
func (q ListJobsQuery) Normalize() ListJobsQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Ascending reports whether jobs are ordered oldest application date first.
func (q ListJobsQuery) Ascending() bool {
	return q.Sort == SortAsc
}

// StatusFilter returns the status to filter by and whether the filter is on.
func (q ListJobsQuery) StatusFilter() (JobStatus, bool) {
	if q.Status == "" || q.Status == StatusFilterAll {
		return "", false
	}
	return JobStatus(q.Status), true
}

// Offset is the number of matching rows skipped before the page starts.
// An offset too large for a signed 64-bit integer saturates at
// math.MaxInt64, which lies past the end of any listing.
func (q ListJobsQuery) Offset() uint64 {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	skipped, limit := int64(q.Page-1), int64(q.Limit)
	if skipped > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return uint64(skipped * limit)
}

// JobPage is one page of a job listing.
type JobPage struct {
	Items     []Job
	Total     int64
	Page      int
	Limit     int
	PageCount int
}

// NewJobPage assembles a page and derives PageCount = ceil(total / limit).
func NewJobPage(items []Job, total int64, query ListJobsQuery) JobPage {
	if items == nil {
		items = []Job{}
	}

	pageCount := 0
	if query.Limit > 0 {
		pageCount = int((total + int64(query.Limit) - 1) / int64(query.Limit))
	}

	return JobPage{
		Items:     items,
		Total:     total,
		Page:      query.Page,
		Limit:     query.Limit,
		PageCount: pageCount,
	}
}
