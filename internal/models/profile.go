package models

import "time"

type Child struct {
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
}

type Profile struct {
	FirstName    string     `json:"first_name,omitempty"`
	Spouse       string     `json:"spouse,omitempty"`
	MarriageDate *time.Time `json:"marriage_date,omitempty"`
	Children     []Child    `json:"children,omitempty"`
}

// HasChildren returns true when at least one child is registered
func (p *Profile) HasChildren() bool {
	return len(p.Children) > 0
}
