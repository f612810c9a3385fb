package letters

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Tier labels how hard a letter fragment is to play. Tiers are ordered
// from most to least common fragment.
type Tier int

const (
	Easy Tier = iota
	Medium
	Hard
	Nightmare
	Impossible
)

var tierNames = []string{
	"easy",
	"medium",
	"hard",
	"nightmare",
	"impossible",
}

func (t Tier) String() string {
	if t < Easy || t > Impossible {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// ParseTier matches a tier by its lowercase name.
func ParseTier(name string) (Tier, bool) {
	for i, n := range tierNames {
		if n == name {
			return Tier(i), true
		}
	}
	return 0, false
}

// Tiers returns all tiers in order of increasing difficulty.
func Tiers() []Tier {
	return []Tier{Easy, Medium, Hard, Nightmare, Impossible}
}

// TierNames returns the tier names in order of increasing difficulty.
func TierNames() []string {
	names := make([]string, len(tierNames))
	copy(names, tierNames)
	return names
}

// Hyphenated fragments only ever occur inside compound words, which
// makes them disproportionately hard regardless of raw frequency.
const separator = "-"

// Occurrence-count boundaries between tiers.
const (
	easyMin      = 10000
	mediumMin    = 5000
	hardMin      = 1000
	nightmareMin = 500
)

var ErrNoFragments = errors.New("letter data contains no fragments")

// Pool holds every known fragment partitioned by difficulty tier. A
// Pool is immutable once constructed and safe for concurrent reads.
type Pool struct {
	tiers map[Tier][]string
}

// NewPool merges the two- and three-letter frequency tables and
// partitions the fragments into tiers. Entries in the three-letter
// table win when both tables carry the same fragment. Construction
// fails if the merged data is empty, carries a negative count, or
// leaves any tier without fragments.
func NewPool(two, three map[string]int) (*Pool, error) {
	merged := make(map[string]int, len(two)+len(three))
	for frag, count := range two {
		merged[frag] = count
	}
	for frag, count := range three {
		merged[frag] = count
	}
	if len(merged) == 0 {
		return nil, ErrNoFragments
	}

	p := &Pool{tiers: make(map[Tier][]string, len(tierNames))}
	for frag, count := range merged {
		if frag == "" {
			return nil, errors.New("letter data contains an empty fragment")
		}
		if count < 0 {
			return nil, fmt.Errorf("fragment %q has negative count %d", frag, count)
		}
		tier := classify(frag, count)
		p.tiers[tier] = append(p.tiers[tier], frag)
	}

	for _, tier := range Tiers() {
		frags := p.tiers[tier]
		if len(frags) == 0 {
			return nil, fmt.Errorf("letter data has no %s fragments", tier)
		}
		// map iteration order is random; fix the slices so a seeded
		// rand.Rand always picks the same sequence
		sort.Strings(frags)
	}

	return p, nil
}

func classify(frag string, count int) Tier {
	hyphenated := strings.Contains(frag, separator)
	switch {
	case count >= easyMin && !hyphenated:
		return Easy
	case count >= mediumMin && !hyphenated:
		return Medium
	case count >= hardMin:
		return Hard
	case count >= nightmareMin:
		return Nightmare
	default:
		return Impossible
	}
}

// Pick draws one fragment uniformly at random from the tier. The tier
// must be one of Tiers(); every tier is non-empty by construction.
func (p *Pool) Pick(tier Tier, rng *rand.Rand) string {
	frags := p.tiers[tier]
	return frags[rng.Intn(len(frags))]
}

// Size reports how many fragments the tier holds.
func (p *Pool) Size(tier Tier) int {
	return len(p.tiers[tier])
}

// Fragments returns a copy of the tier's fragment list.
func (p *Pool) Fragments(tier Tier) []string {
	frags := make([]string, len(p.tiers[tier]))
	copy(frags, p.tiers[tier])
	return frags
}
