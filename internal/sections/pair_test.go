package sections

import (
	"testing"

	"github.com/bellari/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slot struct {
	id    int
	typ   Type
	lang  locale.Language
	order int
}

func (s slot) SlotType() Type                { return s.typ }
func (s slot) SlotLanguage() locale.Language { return s.lang }
func (s slot) SlotOrder() int                { return s.order }

func fr(id int, typ Type, order int) slot {
	return slot{id: id, typ: typ, lang: locale.LanguageFrench, order: order}
}

func en(id int, typ Type, order int) slot {
	return slot{id: id, typ: typ, lang: locale.LanguageEnglish, order: order}
}

func pairIDs(p Pairing[slot]) (int, int) {
	frID, enID := 0, 0
	if p.FR != nil {
		frID = p.FR.id
	}
	if p.EN != nil {
		enID = p.EN.id
	}
	return frID, enID
}

func TestPairMatchesExactAndNearestCounterparts(t *testing.T) {
	items := []slot{
		fr(1, TypeHero, 0),
		en(2, TypeHero, 0),
		fr(3, TypeIntro, 1),
		en(4, TypeIntro, 3),
	}

	pairs := Pair(items)
	require.Len(t, pairs, 2)

	frID, enID := pairIDs(pairs[0])
	assert.Equal(t, 1, frID)
	assert.Equal(t, 2, enID)
	assert.Equal(t, Key{OrderIndex: 0, Type: TypeHero}, pairs[0].Key)

	frID, enID = pairIDs(pairs[1])
	assert.Equal(t, 3, frID)
	assert.Equal(t, 4, enID)
	assert.Equal(t, Key{OrderIndex: 1, Type: TypeIntro}, pairs[1].Key)
}

func TestPairPrefersFirstCandidateOnDistanceTie(t *testing.T) {
	items := []slot{
		fr(1, TypeService, 2),
		en(2, TypeService, 1),
		en(3, TypeService, 3),
	}

	pairs := Pair(items)
	require.Len(t, pairs, 2)

	frID, enID := pairIDs(pairs[0])
	assert.Equal(t, 1, frID)
	assert.Equal(t, 2, enID)

	frID, enID = pairIDs(pairs[1])
	assert.Equal(t, 0, frID)
	assert.Equal(t, 3, enID)
	assert.Equal(t, Key{OrderIndex: 3, Type: TypeService}, pairs[1].Key)
}

func TestPairStopsAtFirstExactMatch(t *testing.T) {
	items := []slot{
		fr(1, TypeHero, 0),
		en(2, TypeHero, 4),
		en(3, TypeHero, 0),
		en(4, TypeHero, 0),
	}

	pairs := Pair(items)
	require.Len(t, pairs, 3)

	frID, enID := pairIDs(pairs[0])
	assert.Equal(t, 1, frID)
	assert.Equal(t, 3, enID)
}

func TestPairIgnoresOtherTypesAndSameLanguage(t *testing.T) {
	items := []slot{
		fr(1, TypeHero, 0),
		fr(2, TypeHero, 0),
		en(3, TypeIntro, 0),
	}

	pairs := Pair(items)
	require.Len(t, pairs, 3)
	for _, p := range pairs {
		frID, enID := pairIDs(p)
		assert.False(t, frID != 0 && enID != 0, "no pair should be complete")
	}
}

func TestPairOpenedByEnglishSection(t *testing.T) {
	items := []slot{
		en(1, TypeCTA, 4),
		fr(2, TypeCTA, 5),
	}

	pairs := Pair(items)
	require.Len(t, pairs, 1)
	frID, enID := pairIDs(pairs[0])
	assert.Equal(t, 2, frID)
	assert.Equal(t, 1, enID)
	assert.Equal(t, Key{OrderIndex: 4, Type: TypeCTA}, pairs[0].Key)
	assert.Same(t, pairs[0].EN, pairs[0].Section(locale.LanguageEnglish))
}

func TestPairClaimsEverySectionExactlyOnce(t *testing.T) {
	items := []slot{
		fr(1, TypeHero, 0),
		en(2, TypeHero, 0),
		fr(3, TypeService, 1),
		fr(4, TypeService, 2),
		en(5, TypeService, 2),
		en(6, TypeService, 7),
		en(7, TypeService, 9),
		fr(8, TypeCTA, 3),
		en(9, TypeText, 3),
		fr(10, TypeText, 8),
		en(11, TypeHero, 1),
	}

	pairs := Pair(items)

	seen := make(map[int]int)
	for _, p := range pairs {
		require.False(t, p.FR == nil && p.EN == nil, "empty pairing")
		if p.FR != nil {
			assert.Equal(t, locale.LanguageFrench, p.FR.lang)
			seen[p.FR.id]++
		}
		if p.EN != nil {
			assert.Equal(t, locale.LanguageEnglish, p.EN.lang)
			seen[p.EN.id]++
		}
		if p.FR != nil && p.EN != nil {
			assert.Equal(t, p.FR.typ, p.EN.typ)
		}
	}

	require.Len(t, seen, len(items))
	for _, item := range items {
		assert.Equal(t, 1, seen[item.id], "section %d", item.id)
	}
}

func TestPairEmptyInput(t *testing.T) {
	assert.Empty(t, Pair[slot](nil))
}

func TestParseType(t *testing.T) {
	typ, ok := ParseType(" Why_Us ")
	require.True(t, ok)
	assert.Equal(t, TypeWhyUs, typ)

	_, ok = ParseType("banner")
	assert.False(t, ok)
}
