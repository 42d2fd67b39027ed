// README: Pricing aggregate: the active rate card, per-module overrides and
// promo rules. A loaded Config is treated as immutable.
package pricing

import (
	"time"

	"umzug/internal/modules/catalog"
	"umzug/internal/types"
)

// Config is one versioned rate card row. All monetary amounts are cents.
type Config struct {
	ID        string
	Currency  string
	UpdatedAt time.Time

	MovingBaseFee   types.Cents
	DisposalBaseFee types.Cents
	HourlyRate      types.Cents
	PerM3Moving     types.Cents
	PerM3Disposal   types.Cents
	PerKm           types.Cents
	MinDrive        types.Cents

	HeavyItemSurcharge     types.Cents
	StairsSurchargePerFlr  types.Cents
	CarrySurchargePer25m   types.Cents
	ParkingSurchargeMedium types.Cents
	ParkingSurchargeHard   types.Cents
	ElevatorDiscountSmall  types.Cents
	ElevatorDiscountLarge  types.Cents

	// UncertaintyPercent widens the displayed price corridor, clamped to [0,30].
	UncertaintyPercent float64

	EconomyMultiplier  float64
	StandardMultiplier float64
	ExpressMultiplier  float64

	EconomyLeadDays  int
	StandardLeadDays int
	ExpressLeadDays  int

	// Per-module base fee overrides. Zero means "use the core fee".
	MontageBaseFee    types.Cents
	EntsorgungBaseFee types.Cents

	// Per-module package multipliers. Zero means "use the built-in default".
	MontageStandardMult    float64
	MontagePlusMult        float64
	MontagePremiumMult     float64
	EntsorgungStandardMult float64
	EntsorgungPlusMult     float64
	EntsorgungPremiumMult  float64

	MontageMinimumOrder    types.Cents
	EntsorgungMinimumOrder types.Cents
}

// SpeedMultiplier returns the factor applied to the subtotal for a speed.
// Unknown speeds fall back to the standard multiplier.
func (c *Config) SpeedMultiplier(speed types.Speed) float64 {
	switch speed {
	case types.SpeedEconomy:
		return c.EconomyMultiplier
	case types.SpeedExpress:
		return c.ExpressMultiplier
	default:
		return c.StandardMultiplier
	}
}

// LeadDays returns the minimum booking lead time for a speed.
func (c *Config) LeadDays(speed types.Speed) int {
	switch speed {
	case types.SpeedEconomy:
		return c.EconomyLeadDays
	case types.SpeedExpress:
		return c.ExpressLeadDays
	default:
		return c.StandardLeadDays
	}
}

// Built-in package tier tables. Overridable per module through the config row.
var (
	movingTierMult   = map[types.Tier]float64{types.TierStandard: 0.96, types.TierPlus: 1, types.TierPremium: 1.12}
	disposalTierMult = map[types.Tier]float64{types.TierStandard: 0.94, types.TierPlus: 1, types.TierPremium: 1.10}
	bothTierMult     = map[types.Tier]float64{types.TierStandard: 0.95, types.TierPlus: 1, types.TierPremium: 1.11}

	montageTierMult    = map[types.Tier]float64{types.TierStandard: 0.98, types.TierPlus: 1, types.TierPremium: 1.12}
	entsorgungTierMult = map[types.Tier]float64{types.TierStandard: 0.96, types.TierPlus: 1, types.TierPremium: 1.10}
)

// TierMultiplier resolves the package multiplier for a booking. A module
// context wins over the service type; a zero override falls through to the
// built-in table.
func (c *Config) TierMultiplier(serviceType types.ServiceType, module catalog.ModuleSlug, tier types.Tier) float64 {
	switch module {
	case catalog.ModuleMontage, catalog.ModuleSpecial:
		if m := c.montageOverride(tier); m > 0 {
			return m
		}
		return tierOrDefault(montageTierMult, tier)
	case catalog.ModuleEntsorgung:
		if m := c.entsorgungOverride(tier); m > 0 {
			return m
		}
		return tierOrDefault(entsorgungTierMult, tier)
	}
	switch serviceType {
	case types.ServiceMoving:
		return tierOrDefault(movingTierMult, tier)
	case types.ServiceDisposal:
		return tierOrDefault(disposalTierMult, tier)
	default:
		return tierOrDefault(bothTierMult, tier)
	}
}

func tierOrDefault(table map[types.Tier]float64, tier types.Tier) float64 {
	if m, ok := table[tier]; ok {
		return m
	}
	return table[types.TierPlus]
}

func (c *Config) montageOverride(tier types.Tier) float64 {
	switch tier {
	case types.TierStandard:
		return c.MontageStandardMult
	case types.TierPremium:
		return c.MontagePremiumMult
	default:
		return c.MontagePlusMult
	}
}

func (c *Config) entsorgungOverride(tier types.Tier) float64 {
	switch tier {
	case types.TierStandard:
		return c.EntsorgungStandardMult
	case types.TierPremium:
		return c.EntsorgungPremiumMult
	default:
		return c.EntsorgungPlusMult
	}
}

// BaseFeeFor returns the moving-leg base fee for a module context.
func (c *Config) BaseFeeFor(module catalog.ModuleSlug) types.Cents {
	if (module == catalog.ModuleMontage || module == catalog.ModuleSpecial) && c.MontageBaseFee > 0 {
		return c.MontageBaseFee
	}
	return c.MovingBaseFee
}

// DisposalBaseFeeFor returns the disposal-leg base fee for a module context.
func (c *Config) DisposalBaseFeeFor(module catalog.ModuleSlug) types.Cents {
	if module == catalog.ModuleEntsorgung && c.EntsorgungBaseFee > 0 {
		return c.EntsorgungBaseFee
	}
	return c.DisposalBaseFee
}

// MinimumOrderFor returns the floor the final total is clamped to.
// The SPECIAL module shares the montage minimum.
func (c *Config) MinimumOrderFor(module catalog.ModuleSlug) types.Cents {
	switch module {
	case catalog.ModuleMontage, catalog.ModuleSpecial:
		return c.MontageMinimumOrder
	case catalog.ModuleEntsorgung:
		return c.EntsorgungMinimumOrder
	}
	return 0
}

// ApplyDriveOverrides replaces the drive pricing with operator-provided
// values. Zero values leave the rate card untouched.
func (c *Config) ApplyDriveOverrides(perKm, minDrive types.Cents) {
	if perKm > 0 {
		c.PerKm = perKm
	}
	if minDrive > 0 {
		c.MinDrive = minDrive
	}
}

// Uncertainty returns the corridor width as a fraction, clamped to [0, 0.30].
func (c *Config) Uncertainty() float64 {
	return types.Clamp(c.UncertaintyPercent, 0, 30) / 100
}

// DiscountType selects how a promo rule's value is interpreted.
type DiscountType string

const (
	DiscountPercent   DiscountType = "PERCENT"
	DiscountFlatCents DiscountType = "FLAT_CENTS"
)

// PromoRule is one promo code definition. Scope fields are optional:
// an empty module or service type scope matches any booking.
type PromoRule struct {
	ID               string
	Code             string
	Module           catalog.ModuleSlug
	ServiceTypeScope types.ServiceType
	DiscountType     DiscountType
	DiscountValue    float64
	MinOrderCents    types.Cents
	MaxDiscountCents types.Cents
	ValidFrom        *time.Time
	ValidTo          *time.Time
	Active           bool
	UpdatedAt        time.Time
}
