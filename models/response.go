package models

// Envelope is the common part of every JSON response body. Failed responses
// carry ErrorKind and, for validation failures, per-field messages.
type Envelope struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	ErrorKind string            `json:"errorKind,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Envelope
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UserResponse is returned by the current-user and profile upload endpoints.
type UserResponse struct {
	Envelope
	User *User `json:"user"`
}

// JobResponse wraps a single job.
type JobResponse struct {
	Envelope
	Data *Job `json:"data,omitempty"`
}

// Pagination describes the returned page of a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// JobListResponse is returned by the job listing. Count is the number of
// items in Data, Total the number of jobs matching the filters.
type JobListResponse struct {
	Envelope
	Count      int        `json:"count"`
	Total      int64      `json:"total"`
	Pagination Pagination `json:"pagination"`
	Data       []Job      `json:"data"`
}

// NewJobListResponse converts a JobPage into its wire form.
func NewJobListResponse(page JobPage) JobListResponse {
	return JobListResponse{
		Envelope: Envelope{Success: true},
		Count:    len(page.Items),
		Total:    page.Total,
		Pagination: Pagination{
			Page:  page.Page,
			Limit: page.Limit,
			Pages: page.PageCount,
		},
		Data: page.Items,
	}
}

// HealthResponse is returned by the liveness probe.
type HealthResponse struct {
	Envelope
	Version string `json:"version,omitempty"`
}
