package domain

import (
	"strings"
	"time"
)

// TimelineKind discriminates content timeline entries.
type TimelineKind string

const (
	TimelineImage       TimelineKind = "image"
	TimelineDescription TimelineKind = "description"
)

// TimelineItem is one ordered block of a project's long-form content.
type TimelineItem struct {
	Kind    TimelineKind `json:"type"`
	Content string       `json:"content"`
	ID      string       `json:"id"`
}

// Project is a portfolio entry owned by the user that created it.
type Project struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Image           string         `json:"image"`
	Date            string         `json:"date"`
	Technologies    []string       `json:"technologies"`
	Link            string         `json:"link"`
	Images          []string       `json:"images"`
	Descriptions    []string       `json:"descriptions"`
	ContentTimeline []TimelineItem `json:"contentTimeline"`
	CreatedBy       string         `json:"createdBy"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// OwnedBy reports whether userID created the project.
func (p *Project) OwnedBy(userID string) bool {
	return userID != "" && p.CreatedBy == userID
}

// ProjectPatch carries a partial update. Nil fields are left untouched;
// CreatedBy is deliberately absent.
type ProjectPatch struct {
	Title           *string
	Description     *string
	Image           *string
	Date            *string
	Technologies    *[]string
	Link            *string
	Images          *[]string
	Descriptions    *[]string
	ContentTimeline *[]TimelineItem
}

// Empty reports whether the patch would change nothing.
func (p ProjectPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Image == nil && p.Date == nil &&
		p.Technologies == nil && p.Link == nil && p.Images == nil && p.Descriptions == nil &&
		p.ContentTimeline == nil
}

// Apply copies the present fields onto project.
func (p ProjectPatch) Apply(project *Project) {
	if p.Title != nil {
		project.Title = *p.Title
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.Image != nil {
		project.Image = *p.Image
	}
	if p.Date != nil {
		project.Date = *p.Date
	}
	if p.Technologies != nil {
		project.Technologies = *p.Technologies
	}
	if p.Link != nil {
		project.Link = *p.Link
	}
	if p.Images != nil {
		project.Images = *p.Images
	}
	if p.Descriptions != nil {
		project.Descriptions = *p.Descriptions
	}
	if p.ContentTimeline != nil {
		project.ContentTimeline = *p.ContentTimeline
	}
}

// SplitList normalizes a comma-delimited list: entries are trimmed and
// blanks dropped.
func SplitList(s string) []string {
	return CleanList(strings.Split(s, ","))
}

// CleanList trims every entry and drops the blank ones, preserving order.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if t := strings.TrimSpace(item); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ValidateTimeline checks entry kinds and contents.
func ValidateTimeline(items []TimelineItem) error {
	for _, item := range items {
		if item.Kind != TimelineImage && item.Kind != TimelineDescription {
			return NewValidationError("contentTimeline", "type must be one of: image description")
		}
		if strings.TrimSpace(item.Content) == "" {
			return NewValidationError("contentTimeline", "content is required")
		}
	}
	return nil
}
