package handler

import (
	"time"

	"wordsrecord/internal/country"
	"wordsrecord/internal/nationality/models"
)

type FactResponse struct {
	ID           string     `json:"id"`
	PersonID     string     `json:"person_id"`
	CountryCode  string     `json:"country_code"`
	CountryName  string     `json:"country_name"`
	FlagEmoji    string     `json:"flag_emoji"`
	Type         string     `json:"type"`
	Acquisition  string     `json:"acquisition,omitempty"`
	IsPrimary    bool       `json:"is_primary"`
	DisplayOrder int        `json:"display_order"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	SourceID     string     `json:"source_id,omitempty"`
	Confidence   int        `json:"confidence"`
	Note         string     `json:"note,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type FactListResponse struct {
	Facts []*FactResponse `json:"facts"`
	Count int             `json:"count"`
}

func toFactResponse(f *models.Fact) *FactResponse {
	resp := &FactResponse{
		ID:           f.ID.String(),
		PersonID:     f.PersonID.String(),
		CountryCode:  f.CountryCode,
		CountryName:  country.Name(f.CountryCode),
		FlagEmoji:    country.Flag(f.CountryCode),
		Type:         string(f.Type),
		IsPrimary:    f.IsPrimary,
		DisplayOrder: f.DisplayOrder,
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		Confidence:   f.Confidence,
		Note:         f.Note,
		Active:       f.IsActive(),
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
	if f.Acquisition != nil {
		resp.Acquisition = string(*f.Acquisition)
	}
	if f.SourceID != nil {
		resp.SourceID = f.SourceID.String()
	}
	return resp
}
