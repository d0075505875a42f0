package sections

import (
	"cmp"
	"slices"

	"github.com/bellari/internal/locale"
)

type groupKey struct {
	typ  Type
	lang locale.Language
}

// Normalize computes dense order indexes for the sections of one page so that the
// i-th French and i-th English section of every type share the same value.
//
// The result is parallel to items. Types are laid out in contiguous blocks in the
// order they are first met when walking items by ascending order_index; inside a
// type, sections keep their relative order. Sections whose language is neither fr
// nor en keep their current order index.
func Normalize[T Slotted](items []T) []int {
	orders := make([]int, len(items))
	for i, item := range items {
		orders[i] = item.SlotOrder()
	}

	indexes := make([]int, len(items))
	for i := range indexes {
		indexes[i] = i
	}
	slices.SortStableFunc(indexes, func(a, b int) int {
		return cmp.Compare(items[a].SlotOrder(), items[b].SlotOrder())
	})

	groups := make(map[groupKey][]int)
	typeOrder := make([]Type, 0)
	seen := make(map[Type]struct{})
	for _, idx := range indexes {
		item := items[idx]
		key := groupKey{typ: item.SlotType(), lang: item.SlotLanguage()}
		groups[key] = append(groups[key], idx)
		if _, ok := seen[key.typ]; !ok {
			seen[key.typ] = struct{}{}
			typeOrder = append(typeOrder, key.typ)
		}
	}

	next := 0
	for _, typ := range typeOrder {
		fr := groups[groupKey{typ: typ, lang: locale.LanguageFrench}]
		en := groups[groupKey{typ: typ, lang: locale.LanguageEnglish}]
		slots := max(len(fr), len(en))
		if slots == 0 {
			continue
		}
		for i := 0; i < slots; i++ {
			if i < len(fr) {
				orders[fr[i]] = next
			}
			if i < len(en) {
				orders[en[i]] = next
			}
			next++
		}
	}

	return orders
}

// Changed counts the items whose order index differs from orders.
func Changed[T Slotted](items []T, orders []int) int {
	count := 0
	for i, item := range items {
		if i < len(orders) && item.SlotOrder() != orders[i] {
			count++
		}
	}
	return count
}
