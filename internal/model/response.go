package model

// PageMeta is the pagination part shared by every list response
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	Total      int64 `json:"total"`
}

// JobListResponse is a page of jobs
type JobListResponse struct {
	Jobs []Job `json:"jobs"`
	PageMeta
}

// ApplicationListResponse is a page of applications
type ApplicationListResponse struct {
	Applications []Application `json:"applications"`
	PageMeta
}

// UserListResponse is a page of users
type UserListResponse struct {
	Users []User `json:"users"`
	PageMeta
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UserResponse wraps a user with a human readable message
type UserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// JobResponse wraps a job with a human readable message
type JobResponse struct {
	Message string `json:"message"`
	Job     Job    `json:"job"`
}

// ApplicationResponse wraps an application with a human readable message
type ApplicationResponse struct {
	Message     string      `json:"message"`
	Application Application `json:"application"`
}

// ApplicationCountResponse is the number of applications for one job
type ApplicationCountResponse struct {
	JobID            uint  `json:"jobId"`
	TotalApplication int64 `json:"totalApplication"`
}
