package model

import (
	"encoding/json"
	"fmt"
)

// Item is a single document requirement inside a Section.
type Item struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Mandatory   bool   `json:"isMandatory"`
	OfflineOnly bool   `json:"isOfflineOnly"`
}

// Section groups related document requirements within a Service.
// Items keep their insertion order; the order is significant for display.
type Section struct {
	ID          string `validate:"required"`
	Title       string `validate:"required"`
	Description string
	Hint        DisplayHint
	Items       []Item `validate:"dive"`
}

// Service is a top-level document-requirement category. It owns its
// sections exclusively; sections are never shared between services.
type Service struct {
	ID       string    `json:"id" validate:"required"`
	Name     string    `json:"name" validate:"required"`
	Icon     Icon      `json:"iconName"`
	Sections []Section `json:"sections" validate:"dive"`
}

// CheckedState records which items a user has ticked off, keyed by item
// id. Absence of a key means unchecked. Keys may outlive the items they
// refer to; orphan entries are harmless and never cleaned up.
type CheckedState map[string]bool

// HintKind tags a section's DisplayHint.
type HintKind int

const (
	HintNone HintKind = iota
	HintIcon
	HintImage
)

// DisplayHint is how a section asks to be decorated: a known icon, an
// image URL, or nothing. Icon and image are mutually exclusive, which is
// why this is one tagged value and not two optional fields.
type DisplayHint struct {
	Kind HintKind
	Icon Icon
	URL  string
}

func IconHint(ic Icon) DisplayHint { return DisplayHint{Kind: HintIcon, Icon: ic} }

func ImageHint(url string) DisplayHint { return DisplayHint{Kind: HintImage, URL: url} }

// sectionJSON is the stored shape of a Section. The hint round-trips as
// the iconName/imageUrl pair the original record format uses.
type sectionJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IconName    string `json:"iconName,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Items       []Item `json:"items"`
}

func (s Section) MarshalJSON() ([]byte, error) {
	out := sectionJSON{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Items:       s.Items,
	}
	if out.Items == nil {
		out.Items = []Item{}
	}
	switch s.Hint.Kind {
	case HintIcon:
		out.IconName = string(s.Hint.Icon)
	case HintImage:
		out.ImageURL = s.Hint.URL
	}
	return json.Marshal(out)
}

func (s *Section) UnmarshalJSON(b []byte) error {
	var in sectionJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return fmt.Errorf("section: %w", err)
	}
	s.ID = in.ID
	s.Title = in.Title
	s.Description = in.Description
	s.Items = in.Items
	switch {
	case in.IconName != "":
		// Icon wins when a legacy record carries both fields.
		s.Hint = IconHint(ParseIcon(in.IconName))
	case in.ImageURL != "":
		s.Hint = ImageHint(in.ImageURL)
	default:
		s.Hint = DisplayHint{}
	}
	return nil
}

// Clone returns a deep copy. Handing copies to callers keeps the store's
// tree free of aliasing: nobody outside the store can reach its slices.
func (s Service) Clone() Service {
	out := s
	out.Sections = make([]Section, len(s.Sections))
	for i, sec := range s.Sections {
		out.Sections[i] = sec.Clone()
	}
	return out
}

func (s Section) Clone() Section {
	out := s
	out.Items = make([]Item, len(s.Items))
	copy(out.Items, s.Items)
	return out
}

// CloneServices deep-copies a whole tree.
func CloneServices(in []Service) []Service {
	out := make([]Service, len(in))
	for i, svc := range in {
		out[i] = svc.Clone()
	}
	return out
}

// Clone copies the checked-state map.
func (c CheckedState) Clone() CheckedState {
	out := make(CheckedState, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// ValidationError rejects a mutation whose required text field is empty
// after trimming. The mutation is dropped entirely; nothing is written.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " cannot be empty"
}
