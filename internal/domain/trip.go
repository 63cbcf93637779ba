package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type TripStatus string

const (
	TripActive    TripStatus = "active"
	TripFull      TripStatus = "full"
	TripCancelled TripStatus = "cancelled"
)

func ParseTripStatus(s string) (TripStatus, bool) {
	switch TripStatus(s) {
	case TripActive, TripFull, TripCancelled:
		return TripStatus(s), true
	default:
		return "", false
	}
}

// Date is a calendar day carried as "2006-01-02" on the wire.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*d = Date{}
		return nil
	}
	// full timestamps are accepted, only the day is kept
	if len(s) > len(dateLayout) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
		*d = NewDate(t.Year(), t.Month(), t.Day())
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Trip struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title" validate:"required"`
	Destination         string     `json:"destination" validate:"required"`
	Description         string     `json:"description"`
	Price               float64    `json:"price" validate:"gt=0"`
	DurationDays        int        `json:"duration_days" validate:"gt=0"`
	MaxParticipants     int        `json:"max_participants"`
	CurrentParticipants int        `json:"current_participants"`
	StartDate           Date       `json:"start_date"`
	EndDate             Date       `json:"end_date"`
	IncludesZinzino     bool       `json:"includes_zinzino"`
	ZinzinoPrice        *float64   `json:"zinzino_price,omitempty"`
	ImageURL            string     `json:"image_url,omitempty"`
	Highlights          []string   `json:"highlights"`
	Included            []string   `json:"included"`
	Excluded            []string   `json:"excluded"`
	Status              TripStatus `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// SeatsLeft never goes below zero even if the record is inconsistent.
func (t *Trip) SeatsLeft() int {
	if n := t.MaxParticipants - t.CurrentParticipants; n > 0 {
		return n
	}
	return 0
}

// AddonSurcharge is the per-participant add-on price, zero when the trip has none.
func (t *Trip) AddonSurcharge() float64 {
	if !t.IncludesZinzino || t.ZinzinoPrice == nil {
		return 0
	}
	return *t.ZinzinoPrice
}

func (t *Trip) Bookable() bool {
	return t.Status == TripActive && t.SeatsLeft() > 0
}

type TripFilter struct {
	Destination     string
	Status          *TripStatus
	IncludesZinzino *bool
}

// Matches applies the catalog filter rules: destination is a case-insensitive
// substring, status and add-on flag match exactly.
func (f TripFilter) Matches(t *Trip) bool {
	if f.Destination != "" && !strings.Contains(strings.ToLower(t.Destination), strings.ToLower(f.Destination)) {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.IncludesZinzino != nil && t.IncludesZinzino != *f.IncludesZinzino {
		return false
	}
	return true
}

// TripPatch carries the fields of a partial update; nil leaves a field as is.
type TripPatch struct {
	Title               *string     `json:"title,omitempty"`
	Destination         *string     `json:"destination,omitempty"`
	Description         *string     `json:"description,omitempty"`
	Price               *float64    `json:"price,omitempty"`
	DurationDays        *int        `json:"duration_days,omitempty"`
	MaxParticipants     *int        `json:"max_participants,omitempty"`
	CurrentParticipants *int        `json:"current_participants,omitempty"`
	StartDate           *Date       `json:"start_date,omitempty"`
	EndDate             *Date       `json:"end_date,omitempty"`
	IncludesZinzino     *bool       `json:"includes_zinzino,omitempty"`
	ZinzinoPrice        *float64    `json:"zinzino_price,omitempty"`
	ImageURL            *string     `json:"image_url,omitempty"`
	Highlights          *[]string   `json:"highlights,omitempty"`
	Included            *[]string   `json:"included,omitempty"`
	Excluded            *[]string   `json:"excluded,omitempty"`
	Status              *TripStatus `json:"status,omitempty"`
}

// Apply merges the patch into t. Timestamps are left to the caller.
func (p TripPatch) Apply(t *Trip) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Destination != nil {
		t.Destination = *p.Destination
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.DurationDays != nil {
		t.DurationDays = *p.DurationDays
	}
	if p.MaxParticipants != nil {
		t.MaxParticipants = *p.MaxParticipants
	}
	if p.CurrentParticipants != nil {
		t.CurrentParticipants = *p.CurrentParticipants
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.IncludesZinzino != nil {
		t.IncludesZinzino = *p.IncludesZinzino
	}
	if p.ZinzinoPrice != nil {
		v := *p.ZinzinoPrice
		t.ZinzinoPrice = &v
	}
	if p.ImageURL != nil {
		t.ImageURL = *p.ImageURL
	}
	if p.Highlights != nil {
		t.Highlights = append([]string(nil), (*p.Highlights)...)
	}
	if p.Included != nil {
		t.Included = append([]string(nil), (*p.Included)...)
	}
	if p.Excluded != nil {
		t.Excluded = append([]string(nil), (*p.Excluded)...)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}
