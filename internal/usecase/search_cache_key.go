package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

type searchCacheKeyInput struct {
	Term     string `json:"term"`
	JobType  string `json:"job_type"`
	Country  string `json:"country"`
	State    string `json:"state"`
	OwnerID  string `json:"owner_id"`
	PageSize int    `json:"page_size"`
	Page     int    `json:"page"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// SearchCacheKey derives a stable key from one filter snapshot. Two snapshots
// that match the same rows hash to the same key.
func SearchCacheKey(p SearchParams) string {
	owner := ""
	if p.OwnerID != nil {
		owner = p.OwnerID.String()
	}

	in := searchCacheKeyInput{
		Term:     normalizeSearchValue(p.Term),
		JobType:  p.JobType,
		Country:  p.Country,
		State:    p.State,
		OwnerID:  owner,
		PageSize: p.PageSize,
		Page:     p.Page,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "jobs:search:" + hex.EncodeToString(sum[:])
}

func SearchLockKey(searchKey string) string {
	if strings.HasPrefix(searchKey, "jobs:search:") {
		return "jobs:lock:" + strings.TrimPrefix(searchKey, "jobs:search:")
	}
	return "jobs:lock:" + searchKey
}
