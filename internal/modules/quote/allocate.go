// README: Rounding-safe split of a cent pool across weighted lines.
package quote

import "umzug/internal/types"

// AllocateCents splits pool proportionally to weights. Every share except
// the last is rounded independently; the last takes whatever remains so the
// parts always sum to the pool exactly. Non-positive weight sums degrade to
// an equal split.
func AllocateCents(pool types.Cents, weights []types.Cents) []types.Cents {
	if len(weights) == 0 {
		return nil
	}
	out := make([]types.Cents, len(weights))

	var total types.Cents
	for _, w := range weights {
		total += w
	}

	var allocated types.Cents
	for i := 0; i < len(weights)-1; i++ {
		var share types.Cents
		if total > 0 {
			share = types.RoundCents(float64(pool) * float64(weights[i]) / float64(total))
		} else {
			share = types.RoundCents(float64(pool) / float64(len(weights)))
		}
		out[i] = share
		allocated += share
	}
	out[len(out)-1] = pool - allocated
	return out
}
