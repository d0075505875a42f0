package sections

import "github.com/bellari/internal/locale"

// Key identifies a pairing by the order index and type of the section that opened it.
type Key struct {
	OrderIndex int
	Type       Type
}

// Pairing groups a French section with its English counterpart. Either side may be nil.
type Pairing[T Slotted] struct {
	Key Key
	FR  *T
	EN  *T
}

// Section returns the side of the pairing stored for lang.
func (p Pairing[T]) Section(lang locale.Language) *T {
	if lang == locale.LanguageEnglish {
		return p.EN
	}
	return p.FR
}

func (p *Pairing[T]) set(lang locale.Language, item *T) {
	if lang == locale.LanguageEnglish {
		p.EN = item
		return
	}
	p.FR = item
}

// Pair matches every section with the nearest unclaimed section of the same type
// in the other language, scanning only sections that come later in items.
//
// items must be in the order they were stored (order_index ascending). Distance is
// the absolute order_index difference; ties go to the first candidate found and a
// zero distance stops the scan. A section that finds no partner leaves its
// counterpart nil. Sections in a language other than en are slotted as French.
func Pair[T Slotted](items []T) []Pairing[T] {
	claimed := make([]bool, len(items))
	pairs := make([]Pairing[T], 0, len(items))

	for i := range items {
		if claimed[i] {
			continue
		}
		claimed[i] = true

		current := items[i]
		lang := slotLanguage(current.SlotLanguage())
		pair := Pairing[T]{Key: Key{OrderIndex: current.SlotOrder(), Type: current.SlotType()}}
		pair.set(lang, &items[i])

		if match := nearestCounterpart(items, claimed, i, lang.Other()); match >= 0 {
			claimed[match] = true
			pair.set(lang.Other(), &items[match])
		}

		pairs = append(pairs, pair)
	}

	return pairs
}

func nearestCounterpart[T Slotted](items []T, claimed []bool, from int, want locale.Language) int {
	origin := items[from]
	best := -1
	bestDistance := 0

	for j := from + 1; j < len(items); j++ {
		if claimed[j] {
			continue
		}
		candidate := items[j]
		if candidate.SlotLanguage() != want || candidate.SlotType() != origin.SlotType() {
			continue
		}

		distance := abs(candidate.SlotOrder() - origin.SlotOrder())
		if best < 0 || distance < bestDistance {
			best = j
			bestDistance = distance
			if distance == 0 {
				break
			}
		}
	}

	return best
}

func slotLanguage(lang locale.Language) locale.Language {
	if lang == locale.LanguageEnglish {
		return locale.LanguageEnglish
	}
	return locale.LanguageFrench
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
