// README: Promo code resolution against the loaded rule set.
package pricing

import (
	"strings"
	"time"

	"umzug/internal/modules/catalog"
	"umzug/internal/types"
)

// NormalizeCode canonicalizes user input before lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidAt reports whether the rule is active inside its validity window.
func (r *PromoRule) ValidAt(now time.Time) bool {
	if !r.Active {
		return false
	}
	if r.ValidFrom != nil && now.Before(*r.ValidFrom) {
		return false
	}
	if r.ValidTo != nil && now.After(*r.ValidTo) {
		return false
	}
	return true
}

// AppliesTo checks the rule's scope and minimum order against a booking.
// The total is the amount after the package multiplier, before discount.
func (r *PromoRule) AppliesTo(module catalog.ModuleSlug, serviceType types.ServiceType, total types.Cents) bool {
	if total < r.MinOrderCents {
		return false
	}
	if r.ServiceTypeScope != "" && r.ServiceTypeScope != serviceType {
		return false
	}
	if r.Module != "" && r.Module != module {
		return false
	}
	return true
}

// DiscountFor computes the discount in cents, capped at MaxDiscountCents
// when set. Never negative, never more than the total.
func (r *PromoRule) DiscountFor(total types.Cents) types.Cents {
	var d types.Cents
	switch r.DiscountType {
	case DiscountPercent:
		pct := types.Clamp(r.DiscountValue, 0, 100)
		d = total.MulRound(pct / 100)
	case DiscountFlatCents:
		d = types.RoundCents(r.DiscountValue).ClampMin0()
	}
	if r.MaxDiscountCents > 0 && d > r.MaxDiscountCents {
		d = r.MaxDiscountCents
	}
	return d.Min(total).ClampMin0()
}

// ResolveDiscount looks up a promo code in the rule set and returns the
// discount it grants plus the matched rule. The first rule carrying the code
// decides: when it is expired, inactive or out of scope the code is rejected,
// even if a later rule with the same code would match.
func ResolveDiscount(rules []PromoRule, code string, module catalog.ModuleSlug, serviceType types.ServiceType, total types.Cents, now time.Time) (types.Cents, *PromoRule) {
	norm := NormalizeCode(code)
	if norm == "" {
		return 0, nil
	}
	for i := range rules {
		r := &rules[i]
		if NormalizeCode(r.Code) != norm {
			continue
		}
		if !r.ValidAt(now) || !r.AppliesTo(module, serviceType, total) {
			return 0, nil
		}
		return r.DiscountFor(total), r
	}
	return 0, nil
}
