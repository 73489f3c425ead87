package payments

import (
	"sort"

	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/utils"
)

// SplitResult holds the per-recipient allocations of one settled amount.
// RemainderCents is zero unless the adjustment loop hit its iteration cap.
type SplitResult struct {
	Allocations    []models.SplitAllocation
	RemainderCents int64
}

// ComputeSplit distributes baseAmountCents across the configured rules.
// Allocations are rounded half-to-even at two decimals; leftover cents from
// rounding are pushed one by one onto the first recipient present in the
// fixed priority order, so the allocations plus the remainder always sum to
// the base amount.
func ComputeSplit(baseAmountCents int64, rules []models.SplitRule, adjustmentCap int) SplitResult {
	if len(rules) == 0 {
		rules = []models.SplitRule{
			{Recipient: models.SplitRecipientClinic, Percentage: 100, Order: 0},
		}
	}

	sorted := make([]models.SplitRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	baseUnits := float64(baseAmountCents) / 100

	var allocations []models.SplitAllocation
	index := make(map[models.SplitRecipient]int)
	var allocatedCents int64
	for _, rule := range sorted {
		amountCents := utils.RoundHalfEvenCents(baseUnits * rule.Percentage / 100)
		allocatedCents += amountCents

		if position, exists := index[rule.Recipient]; exists {
			allocations[position].Percentage += rule.Percentage
			allocations[position].AmountCents += amountCents
			continue
		}
		index[rule.Recipient] = len(allocations)
		allocations = append(allocations, models.SplitAllocation{
			Recipient:   rule.Recipient,
			Percentage:  rule.Percentage,
			AmountCents: amountCents,
		})
	}

	remainder := baseAmountCents - allocatedCents
	for iteration := 0; remainder != 0 && iteration < adjustmentCap; iteration++ {
		target := -1
		for _, recipient := range models.SplitRecipientPriority {
			if position, exists := index[recipient]; exists {
				target = position
				break
			}
		}
		if target < 0 {
			break
		}
		if remainder > 0 {
			allocations[target].AmountCents++
			remainder--
		} else {
			allocations[target].AmountCents--
			remainder++
		}
	}

	return SplitResult{Allocations: allocations, RemainderCents: remainder}
}
