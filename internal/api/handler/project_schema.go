package handler

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/nhanstudio/portfolio-api/internal/core/domain"
	"github.com/nhanstudio/portfolio-api/internal/core/ports"
)

// stringList accepts either a JSON array of strings or a single
// comma-delimited string, and normalizes both to trimmed non-blank entries.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = domain.SplitList(s)
		return nil
	}

	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*l = domain.CleanList(items)
	return nil
}

type timelineItemRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	ID      string `json:"id,omitempty"`
}

// projectRequest is shared by create and update. Absent fields stay nil so
// an update only touches what the client sent.
type projectRequest struct {
	Title           *string                `json:"title,omitempty"`
	Description     *string                `json:"description,omitempty"`
	Image           *string                `json:"image,omitempty"`
	Date            *string                `json:"date,omitempty"`
	Technologies    *stringList            `json:"technologies,omitempty" swaggertype:"array,string"`
	Link            *string                `json:"link,omitempty"`
	Images          *[]string              `json:"images,omitempty"`
	Descriptions    *[]string              `json:"descriptions,omitempty"`
	ContentTimeline *[]timelineItemRequest `json:"contentTimeline,omitempty"`
}

func (r *projectRequest) toInput() ports.ProjectInput {
	in := ports.ProjectInput{
		Title:       deref(r.Title),
		Description: deref(r.Description),
		Image:       deref(r.Image),
		Date:        deref(r.Date),
		Link:        deref(r.Link),
	}
	if r.Technologies != nil {
		in.Technologies = []string(*r.Technologies)
	}
	if r.Images != nil {
		in.Images = *r.Images
	}
	if r.Descriptions != nil {
		in.Descriptions = *r.Descriptions
	}
	if r.ContentTimeline != nil {
		in.ContentTimeline = toTimeline(*r.ContentTimeline)
	}
	return in
}

func (r *projectRequest) toPatch() domain.ProjectPatch {
	patch := domain.ProjectPatch{
		Title:        r.Title,
		Description:  r.Description,
		Image:        r.Image,
		Date:         r.Date,
		Link:         r.Link,
		Images:       r.Images,
		Descriptions: r.Descriptions,
	}
	if r.Technologies != nil {
		techs := []string(*r.Technologies)
		patch.Technologies = &techs
	}
	if r.ContentTimeline != nil {
		items := toTimeline(*r.ContentTimeline)
		patch.ContentTimeline = &items
	}
	return patch
}

type projectResponse struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Image           string                `json:"image"`
	Date            string                `json:"date"`
	Technologies    []string              `json:"technologies"`
	Link            string                `json:"link"`
	Images          []string              `json:"images"`
	Descriptions    []string              `json:"descriptions"`
	ContentTimeline []domain.TimelineItem `json:"contentTimeline"`
	CreatedBy       domain.UserRef        `json:"createdBy"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

func toProjectResponse(v *ports.ProjectView) projectResponse {
	p := v.Project
	return projectResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Image:           p.Image,
		Date:            p.Date,
		Technologies:    nonNilStrings(p.Technologies),
		Link:            p.Link,
		Images:          nonNilStrings(p.Images),
		Descriptions:    nonNilStrings(p.Descriptions),
		ContentTimeline: nonNilTimeline(p.ContentTimeline),
		CreatedBy:       v.Owner,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toProjectResponses(views []ports.ProjectView) []projectResponse {
	out := make([]projectResponse, len(views))
	for i := range views {
		out[i] = toProjectResponse(&views[i])
	}
	return out
}

func toTimeline(items []timelineItemRequest) []domain.TimelineItem {
	out := make([]domain.TimelineItem, len(items))
	for i, it := range items {
		out[i] = domain.TimelineItem{Kind: domain.TimelineKind(it.Type), Content: it.Content, ID: it.ID}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilTimeline(items []domain.TimelineItem) []domain.TimelineItem {
	if items == nil {
		return []domain.TimelineItem{}
	}
	return items
}
