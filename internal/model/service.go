package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ServiceStatus is the publication state of a marketplace listing.
type ServiceStatus string

const (
	StatusActive   ServiceStatus = "active"
	StatusDraft    ServiceStatus = "draft"
	StatusArchived ServiceStatus = "archived"
)

func (s ServiceStatus) Valid() bool {
	switch s {
	case StatusActive, StatusDraft, StatusArchived:
		return true
	}
	return false
}

// Defaults applied when a create payload omits optional fields.
const (
	DefaultPricing = "Free"
	DefaultStatus  = StatusDraft

	// MaxTags bounds the tag list on every write.
	MaxTags = 20
)

// Service is a marketplace listing for an MCP service.
type Service struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	Summary     string        `db:"summary" json:"summary"`
	Category    string        `db:"category" json:"category"`
	Tags        []string      `db:"tags" json:"tags"`
	Pricing     string        `db:"pricing" json:"pricing"`
	Status      ServiceStatus `db:"status" json:"status"`
	ContactInfo string        `db:"contact_info" json:"contactInfo"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt"`
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (s *Service) Clone() *Service {
	out := *s
	out.Tags = append([]string{}, s.Tags...)
	return &out
}

// ServicePatch carries the fields of a partial update. Nil means untouched.
type ServicePatch struct {
	Title       *string
	Summary     *string
	Category    *string
	Tags        []string
	Pricing     *string
	Status      *ServiceStatus
	ContactInfo *string
}

// Apply merges the patch into svc. Tags are re-normalized when supplied.
func (p ServicePatch) Apply(svc *Service) {
	if p.Title != nil {
		svc.Title = *p.Title
	}
	if p.Summary != nil {
		svc.Summary = *p.Summary
	}
	if p.Category != nil {
		svc.Category = *p.Category
	}
	if p.Tags != nil {
		svc.Tags = NormalizeTags(p.Tags)
	}
	if p.Pricing != nil {
		svc.Pricing = *p.Pricing
	}
	if p.Status != nil {
		svc.Status = *p.Status
	}
	if p.ContactInfo != nil {
		svc.ContactInfo = *p.ContactInfo
	}
}

// NormalizeTags trims entries, drops blanks, caps the list at MaxTags and
// removes duplicates while preserving first-seen order.
func NormalizeTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		if len(cleaned) == MaxTags {
			break
		}
		seen[t] = struct{}{}
		cleaned = append(cleaned, t)
	}
	return cleaned
}
