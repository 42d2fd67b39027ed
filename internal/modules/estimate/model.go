// README: Estimate engine input and output shapes. The engine itself is a
// pure function over these.
package estimate

import (
	"time"

	"umzug/internal/modules/catalog"
	"umzug/internal/modules/distance"
	"umzug/internal/modules/pricing"
	"umzug/internal/types"
)

// Parking difficulty at an access point.
type Parking string

const (
	ParkingNone   Parking = "none"
	ParkingMedium Parking = "medium"
	ParkingHard   Parking = "hard"
)

// Elevator size at an access point.
type Elevator string

const (
	ElevatorNone  Elevator = "none"
	ElevatorSmall Elevator = "small"
	ElevatorLarge Elevator = "large"
)

// Stairs difficulty at an access point.
type Stairs string

const (
	StairsNone Stairs = "none"
	StairsFew  Stairs = "few"
	StairsMany Stairs = "many"
)

// AccessPoint describes the load/unload difficulty at one address.
type AccessPoint struct {
	PropertyType   string
	Floor          int
	Elevator       Elevator
	Stairs         Stairs
	Parking        Parking
	CarryDistanceM float64
	NoParkingZone  bool
}

// ItemSelection is one picked catalog item with its quantity.
type ItemSelection struct {
	ItemID   string
	Quantity int
}

// OptionSelection is one picked add-on service option.
type OptionSelection struct {
	Code     string
	Quantity int
}

// AddonCode is a fixed-price extra offered in the wizard.
type AddonCode string

const (
	AddonPacking              AddonCode = "PACKING"
	AddonDismantleAssemble    AddonCode = "DISMANTLE_ASSEMBLE"
	AddonOldKitchenDisposal   AddonCode = "OLD_KITCHEN_DISPOSAL"
	AddonBasementAtticClearup AddonCode = "BASEMENT_ATTIC_CLEARING"
)

var addonPriceCents = map[AddonCode]types.Cents{
	AddonPacking:              2500,
	AddonDismantleAssemble:    3500,
	AddonOldKitchenDisposal:   6000,
	AddonBasementAtticClearup: 4000,
}

// Payload is one normalized customer draft.
type Payload struct {
	ServiceType types.ServiceType
	// Module is the booking context for module flows (MONTAGE/ENTSORGUNG/
	// SPECIAL); empty for the plain moving wizard.
	Module catalog.ModuleSlug
	Speed  types.Speed
	Tier   types.Tier

	MoveItems     []ItemSelection
	DisposalItems []ItemSelection
	// ManualVolumeM3 stands in for the move volume when no items are picked.
	ManualVolumeM3 float64
	// ExtraDisposalVolumeM3 is added on top of the disposal item volume.
	ExtraDisposalVolumeM3 float64

	Options   []OptionSelection
	Addons    []AddonCode
	PromoCode string

	AccessPoints []AccessPoint

	// FromPoint/ToPoint allow a straight-line distance approximation when no
	// resolved route distance is supplied.
	FromPoint *types.Point
	ToPoint   *types.Point
}

// Request bundles the payload with the reference data the engine needs.
type Request struct {
	Payload Payload
	Items   map[string]catalog.Item
	Options map[string]catalog.ServiceOption
	Config  *pricing.Config
	Promos  []pricing.PromoRule
	// Distance is an already-resolved route distance, if the caller has one.
	Distance *distance.Result
	Now      time.Time
}

// Result is the full audit breakdown of one estimate.
type Result struct {
	MoveVolumeM3     float64
	DisposalVolumeM3 float64
	TotalVolumeM3    float64
	HeavyCount       int

	LaborMinutes int
	LaborHours   float64

	HasDistance    bool
	DistanceKm     float64
	DistanceSource distance.Source

	DriveCharge     types.Cents
	AccessSurcharge types.Cents
	OptionsCents    types.Cents
	AddonsCents     types.Cents

	Subtotal           types.Cents
	SubtotalAfterSpeed types.Cents
	TotalAfterPackage  types.Cents
	PackageAdjustment  types.Cents

	Discount     types.Cents
	PromoApplied string
	// MinimumOrderApplied is the uplift added to reach the module's minimum
	// order, zero when the floor did not bind.
	MinimumOrderApplied types.Cents

	Total    types.Cents
	PriceMin types.Cents
	PriceMax types.Cents
	Currency string
}
