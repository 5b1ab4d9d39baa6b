package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Tier is one candidate duration band of a custom-priced book type.
type Tier struct {
	NoOfDays int
	Rate     decimal.Decimal
}

// TierPolicy picks the tier that applies to a rental duration. ok is false
// when no tier applies and the flat rent charge should be used.
type TierPolicy interface {
	Name() string
	Select(tiers []Tier, duration int) (t Tier, ok bool)
}

const (
	PolicySmallestCovering = "smallest-covering"
	PolicyLargestReached   = "largest-reached"
)

// DefaultPolicy is used when no policy is configured.
var DefaultPolicy TierPolicy = smallestCovering{}

// PolicyByName resolves a configured policy name; "" means the default.
func PolicyByName(name string) (TierPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicySmallestCovering:
		return smallestCovering{}, nil
	case PolicyLargestReached:
		return largestReached{}, nil
	}
	return nil, fmt.Errorf("unknown pricing tier policy %q", name)
}

// smallestCovering selects the shortest tier whose NoOfDays is at least the
// duration.
type smallestCovering struct{}

func (smallestCovering) Name() string { return PolicySmallestCovering }

func (smallestCovering) Select(tiers []Tier, duration int) (Tier, bool) {
	sorted := sortTiers(tiers)
	for _, t := range sorted {
		if t.NoOfDays >= duration {
			return t, true
		}
	}
	return Tier{}, false
}

// largestReached selects the longest tier whose NoOfDays the duration has
// reached.
type largestReached struct{}

func (largestReached) Name() string { return PolicyLargestReached }

func (largestReached) Select(tiers []Tier, duration int) (Tier, bool) {
	sorted := sortTiers(tiers)
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].NoOfDays <= duration {
			// walk back over equal-length tiers to the cheapest one
			j := i
			for j > 0 && sorted[j-1].NoOfDays == sorted[i].NoOfDays {
				j--
			}
			return sorted[j], true
		}
	}
	return Tier{}, false
}

// sortTiers orders by NoOfDays, then by the lower rate, without touching
// the caller's slice.
func sortTiers(tiers []Tier) []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NoOfDays != out[j].NoOfDays {
			return out[i].NoOfDays < out[j].NoOfDays
		}
		return out[i].Rate.LessThan(out[j].Rate)
	})
	return out
}
