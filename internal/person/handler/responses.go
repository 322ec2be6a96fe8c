package handler

import (
	"time"

	"wordsrecord/internal/person/models"
)

type PersonResponse struct {
	ID                     string    `json:"id"`
	Slug                   string    `json:"slug"`
	FullName               string    `json:"full_name"`
	Bio                    string    `json:"bio,omitempty"`
	NationalityPrimaryCode *string   `json:"nationality_primary_code"`
	NationalityCodes       []string  `json:"nationality_codes"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type PersonListResponse struct {
	Persons []*PersonResponse `json:"persons"`
	Count   int               `json:"count"`
}

func toPersonResponse(p *models.Person) *PersonResponse {
	codes := p.NationalityCodesCached
	if codes == nil {
		codes = []string{}
	}
	return &PersonResponse{
		ID:                     p.ID.String(),
		Slug:                   p.Slug,
		FullName:               p.FullName,
		Bio:                    p.Bio,
		NationalityPrimaryCode: p.NationalityPrimaryCode,
		NationalityCodes:       codes,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}
