package models

import (
	"net/url"
	"strings"
	"time"

	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
)

// Source is a citation backing a statement or nationality fact.
type Source struct {
	ID          id.SourceID `json:"id"`
	Title       string      `json:"title"`
	URL         string      `json:"url,omitempty"`
	Publication string      `json:"publication,omitempty"`
	PublishedAt *time.Time  `json:"published_at,omitempty"`
	Reliability int         `json:"reliability"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func NewSource(sourceID id.SourceID, title, rawURL, publication string, publishedAt *time.Time, reliability int, now time.Time) (*Source, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "source title cannot be empty")
	}
	if rawURL != "" {
		parsed, err := url.Parse(rawURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "source url must be http or https")
		}
	}
	if reliability < 0 || reliability > 100 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "reliability must be between 0 and 100")
	}

	return &Source{
		ID:          sourceID,
		Title:       title,
		URL:         rawURL,
		Publication: strings.TrimSpace(publication),
		PublishedAt: publishedAt,
		Reliability: reliability,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

type CreateSourceRequest struct {
	Title       string     `json:"title"`
	URL         string     `json:"url,omitempty"`
	Publication string     `json:"publication,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Reliability *int       `json:"reliability,omitempty"`
}

func (r *CreateSourceRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.URL = strings.TrimSpace(r.URL)
	r.Publication = strings.TrimSpace(r.Publication)
}

func (r *CreateSourceRequest) Validate() error {
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if r.Reliability != nil && (*r.Reliability < 0 || *r.Reliability > 100) {
		return dErrors.New(dErrors.CodeValidation, "reliability must be between 0 and 100")
	}
	return nil
}

type UpdateSourceRequest struct {
	Title       *string    `json:"title,omitempty"`
	URL         *string    `json:"url,omitempty"`
	Publication *string    `json:"publication,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Reliability *int       `json:"reliability,omitempty"`
}

func (r *UpdateSourceRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return dErrors.New(dErrors.CodeValidation, "title cannot be empty")
	}
	if r.Reliability != nil && (*r.Reliability < 0 || *r.Reliability > 100) {
		return dErrors.New(dErrors.CodeValidation, "reliability must be between 0 and 100")
	}
	return nil
}
