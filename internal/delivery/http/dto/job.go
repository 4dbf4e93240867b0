package dto

import (
	"time"

	"job-board/internal/repository"
	"job-board/internal/usecase"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	CreatedAt       string    `json:"created_at"`
	Title           string    `json:"title"`
	CompanyName     string    `json:"company_name"`
	Description     string    `json:"description"`
	LocationCountry string    `json:"location_country"`
	LocationState   string    `json:"location_state"`
	LocationCity    string    `json:"location_city"`
	JobType         string    `json:"job_type"`
}

// JobPageResponse returns the count once, not duplicated onto every row.
type JobPageResponse struct {
	Jobs       []JobResponse `json:"jobs"`
	TotalCount int           `json:"total_count"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

type JobRequest struct {
	Title           string `json:"title"`
	CompanyName     string `json:"company_name"`
	Description     string `json:"description"`
	LocationCountry string `json:"location_country"`
	LocationState   string `json:"location_state"`
	LocationCity    string `json:"location_city"`
	JobType         string `json:"job_type"`
}

func FromJob(j repository.Job) JobResponse {
	return JobResponse{
		ID:              j.ID,
		UserID:          j.OwnerID,
		CreatedAt:       j.CreatedAt.UTC().Format(time.RFC3339),
		Title:           j.Title,
		CompanyName:     j.CompanyName,
		Description:     j.Description,
		LocationCountry: j.LocationCountry,
		LocationState:   j.LocationState,
		LocationCity:    j.LocationCity,
		JobType:         j.JobType,
	}
}

func FromResultPage(p usecase.ResultPage, page, pageSize int) JobPageResponse {
	jobs := make([]JobResponse, 0, len(p.Rows))
	for _, j := range p.Rows {
		jobs = append(jobs, FromJob(j))
	}
	return JobPageResponse{
		Jobs:       jobs,
		TotalCount: p.TotalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: p.TotalPages(pageSize),
	}
}
