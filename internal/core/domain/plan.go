package domain

// Plan is the subscription tier attached to a user. Tiers cap the total
// number of active transactions and the tags allowed per transaction.
type Plan string

const (
	PlanFree      Plan = "free"
	PlanPremium   Plan = "premium"
	PlanUnlimited Plan = "unlimited"
)

// PlanLimits describes the quota ceilings of a tier. A negative value
// means no ceiling.
type PlanLimits struct {
	MaxTransactions int64
	MaxTags         int
}

var planLimits = map[Plan]PlanLimits{
	PlanFree:      {MaxTransactions: 100, MaxTags: 5},
	PlanPremium:   {MaxTransactions: 1000, MaxTags: 10},
	PlanUnlimited: {MaxTransactions: -1, MaxTags: -1},
}

// Limits returns the quota ceilings for the plan. Unknown plans fall back
// to the free tier, which is the most restrictive.
func (p Plan) Limits() PlanLimits {
	if l, ok := planLimits[p]; ok {
		return l
	}
	return planLimits[PlanFree]
}
