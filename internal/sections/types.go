// Package sections holds the bilingual pairing and ordering rules for page sections.
package sections

import (
	"strings"

	"github.com/bellari/internal/locale"
)

// Type identifies the template block a section is rendered with.
type Type string

const (
	TypeHero        Type = "hero"
	TypeIntro       Type = "intro"
	TypeExpertise   Type = "expertise"
	TypeFeatures    Type = "features"
	TypeService     Type = "service"
	TypeWhyUs       Type = "why_us"
	TypeCTA         Type = "cta"
	TypeText        Type = "text"
	TypeContact     Type = "contact"
	TypeGallery     Type = "gallery"
	TypeTestimonial Type = "testimonial"
)

// Types lists every section type known to the templates, in admin menu order.
var Types = []Type{
	TypeHero,
	TypeIntro,
	TypeExpertise,
	TypeFeatures,
	TypeService,
	TypeWhyUs,
	TypeCTA,
	TypeText,
	TypeContact,
	TypeGallery,
	TypeTestimonial,
}

func (t Type) String() string {
	return string(t)
}

// ParseType returns the known type matching raw.
func ParseType(raw string) (Type, bool) {
	trimmed := Type(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range Types {
		if candidate == trimmed {
			return candidate, true
		}
	}
	return "", false
}

// Slotted is implemented by anything that occupies a (type, language, order) slot on a page.
type Slotted interface {
	SlotType() Type
	SlotLanguage() locale.Language
	SlotOrder() int
}
