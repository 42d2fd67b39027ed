package types

// ServiceType is the top-level shape of an order.
type ServiceType string

const (
	ServiceMoving   ServiceType = "MOVING"
	ServiceDisposal ServiceType = "DISPOSAL"
	ServiceBoth     ServiceType = "BOTH"
)

// Speed is the pricing and lead-time category of a booking.
type Speed string

const (
	SpeedEconomy  Speed = "ECONOMY"
	SpeedStandard Speed = "STANDARD"
	SpeedExpress  Speed = "EXPRESS"
)

// Tier is the package level picked inside the wizard.
type Tier string

const (
	TierStandard Tier = "STANDARD"
	TierPlus     Tier = "PLUS"
	TierPremium  Tier = "PREMIUM"
)

// TierForSpeed maps a quote speed onto the wizard package tier used when
// recomputing an estimate per speed.
func TierForSpeed(speed Speed) Tier {
	switch speed {
	case SpeedEconomy:
		return TierStandard
	case SpeedExpress:
		return TierPremium
	default:
		return TierPlus
	}
}
