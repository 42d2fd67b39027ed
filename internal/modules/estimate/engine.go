// README: The estimate engine. Pure: no I/O, no clocks beyond the supplied
// Now, safe for concurrent use.
package estimate

import (
	"math"

	"umzug/internal/modules/catalog"
	"umzug/internal/modules/distance"
	"umzug/internal/modules/pricing"
	"umzug/internal/types"
)

// Labor base minutes per service type.
const (
	baseMinutesMoving   = 30
	baseMinutesDisposal = 25
	baseMinutesBoth     = 45

	minutesPerHeavyItem = 8
)

// Estimate computes the full priced breakdown for one draft.
func Estimate(req Request) Result {
	p := req.Payload
	cfg := req.Config

	var res Result
	res.Currency = cfg.Currency

	// Volumes.
	moveVol := itemVolume(p.MoveItems, req.Items)
	if moveVol == 0 && p.ManualVolumeM3 > 0 {
		moveVol = p.ManualVolumeM3
	}
	dispVol := itemVolume(p.DisposalItems, req.Items) + p.ExtraDisposalVolumeM3
	res.MoveVolumeM3 = types.RoundVolume(moveVol)
	res.DisposalVolumeM3 = types.RoundVolume(dispVol)
	res.TotalVolumeM3 = types.RoundVolume(moveVol + dispVol)

	// Heavy pieces across both carts, plus heavy service options.
	res.HeavyCount = heavyItemCount(p.MoveItems, req.Items) + heavyItemCount(p.DisposalItems, req.Items)

	selected := selectedOptions(p, req.Options)
	optionMinutes := 0
	for _, so := range selected {
		optionMinutes += so.option.DefaultLaborMinutes * so.qty
		if so.option.IsHeavy {
			res.HeavyCount += so.qty
		}
	}

	// Labor.
	minutes := baseMinutes(p.ServiceType)
	minutes += itemLaborMinutes(p.MoveItems, req.Items)
	minutes += itemLaborMinutes(p.DisposalItems, req.Items)
	minutes += optionMinutes
	for _, ap := range p.AccessPoints {
		minutes += accessMinutes(ap)
	}
	minutes += res.HeavyCount * minutesPerHeavyItem
	res.LaborMinutes = minutes
	res.LaborHours = types.LaborHoursFromMinutes(minutes)

	// Distance.
	switch {
	case req.Distance != nil:
		res.HasDistance = true
		res.DistanceKm = req.Distance.Km
		res.DistanceSource = req.Distance.Source
	case p.FromPoint != nil && p.ToPoint != nil:
		res.HasDistance = true
		res.DistanceKm = distance.ApproxTripKm(*p.FromPoint, *p.ToPoint)
		res.DistanceSource = distance.SourceApprox
	}

	// Drive charge applies to the moving leg only.
	moving := p.ServiceType == types.ServiceMoving || p.ServiceType == types.ServiceBoth
	disposal := p.ServiceType == types.ServiceDisposal || p.ServiceType == types.ServiceBoth
	if moving && res.HasDistance {
		res.DriveCharge = cfg.PerKm.MulRound(res.DistanceKm).Max(cfg.MinDrive)
	}

	// Option and addon cost. PER_HOUR options bill the full labor hours.
	for _, so := range selected {
		res.OptionsCents += OptionCost(so.option, so.qty, res.LaborHours)
	}
	for _, code := range p.Addons {
		res.AddonsCents += addonPriceCents[code]
	}

	// Subtotal.
	var sub types.Cents
	if moving {
		sub += cfg.BaseFeeFor(p.Module)
		sub += types.RoundCents(res.MoveVolumeM3 * float64(cfg.PerM3Moving))
		sub += res.DriveCharge
	}
	if disposal {
		sub += cfg.DisposalBaseFeeFor(p.Module)
		sub += types.RoundCents(res.DisposalVolumeM3 * float64(cfg.PerM3Disposal))
	}
	sub += types.RoundCents(res.LaborHours * float64(cfg.HourlyRate))
	for _, ap := range p.AccessPoints {
		res.AccessSurcharge += accessCents(ap, cfg)
	}
	sub += res.AccessSurcharge
	sub += types.Cents(res.HeavyCount) * cfg.HeavyItemSurcharge
	sub += res.OptionsCents
	sub += res.AddonsCents
	res.Subtotal = sub.ClampMin0()

	// Multipliers.
	res.SubtotalAfterSpeed = res.Subtotal.MulRound(cfg.SpeedMultiplier(p.Speed))
	res.TotalAfterPackage = res.SubtotalAfterSpeed.MulRound(cfg.TierMultiplier(p.ServiceType, p.Module, p.Tier))
	res.PackageAdjustment = res.TotalAfterPackage - res.SubtotalAfterSpeed

	// Promo discount, then the module minimum order floor.
	var rule *pricing.PromoRule
	res.Discount, rule = pricing.ResolveDiscount(req.Promos, p.PromoCode, p.Module, p.ServiceType, res.TotalAfterPackage, req.Now)
	if rule != nil {
		res.PromoApplied = rule.Code
	}
	total := (res.TotalAfterPackage - res.Discount).ClampMin0()
	if floor := cfg.MinimumOrderFor(p.Module); total < floor {
		res.MinimumOrderApplied = floor - total
		total = floor
	}
	res.Total = total

	// Uncertainty band.
	u := cfg.Uncertainty()
	res.PriceMin = total.MulRound(1 - u).ClampMin0()
	res.PriceMax = total.MulRound(1 + u).Max(res.PriceMin)

	return res
}

func baseMinutes(st types.ServiceType) int {
	switch st {
	case types.ServiceDisposal:
		return baseMinutesDisposal
	case types.ServiceBoth:
		return baseMinutesBoth
	default:
		return baseMinutesMoving
	}
}

func itemVolume(sel []ItemSelection, items map[string]catalog.Item) float64 {
	v := 0.0
	for _, s := range sel {
		if it, ok := items[s.ItemID]; ok && s.Quantity > 0 {
			v += float64(s.Quantity) * it.DefaultVolumeM3
		}
	}
	return v
}

func itemLaborMinutes(sel []ItemSelection, items map[string]catalog.Item) int {
	m := 0
	for _, s := range sel {
		if it, ok := items[s.ItemID]; ok && s.Quantity > 0 {
			m += s.Quantity * it.LaborMinutesPerUnit
		}
	}
	return m
}

func heavyItemCount(sel []ItemSelection, items map[string]catalog.Item) int {
	n := 0
	for _, s := range sel {
		if it, ok := items[s.ItemID]; ok && it.IsHeavy && s.Quantity > 0 {
			n += s.Quantity
		}
	}
	return n
}

type selectedOption struct {
	option catalog.ServiceOption
	qty    int
}

// selectedOptions resolves picked option codes against the option set,
// keeping only options owned by the booking context module (when one is set).
func selectedOptions(p Payload, options map[string]catalog.ServiceOption) []selectedOption {
	var out []selectedOption
	for _, sel := range p.Options {
		opt, ok := options[sel.Code]
		if !ok {
			continue
		}
		if p.Module != "" && opt.Module != p.Module {
			continue
		}
		qty := 1
		if opt.RequiresQuantity {
			qty = max(1, sel.Quantity)
		}
		out = append(out, selectedOption{option: opt, qty: qty})
	}
	return out
}

// OptionCost prices one selected service option. PER_HOUR options bill the
// full labor hours of the estimate they belong to.
func OptionCost(opt catalog.ServiceOption, qty int, laborHours float64) types.Cents {
	switch opt.PricingType {
	case catalog.PricingPerUnit, catalog.PricingPerM3:
		return opt.DefaultPriceCents * types.Cents(qty)
	case catalog.PricingPerHour:
		return opt.DefaultPriceCents.MulRound(laborHours)
	default:
		return opt.DefaultPriceCents
	}
}

// accessMinutes converts one access point's difficulty into labor minutes.
func accessMinutes(ap AccessPoint) int {
	m := 0
	switch ap.Parking {
	case ParkingHard:
		m += 20
	case ParkingMedium:
		m += 10
	}
	switch ap.Stairs {
	case StairsMany:
		m += 20
	case StairsFew:
		m += 10
	}
	if ap.Elevator == ElevatorNone || ap.Elevator == "" {
		if ap.Floor > 0 {
			m += ap.Floor * 6
		} else if ap.Floor < 0 {
			m += -ap.Floor * 4
		}
	}
	m += carryBlocks(ap.CarryDistanceM) * 5
	return m
}

// accessCents converts one access point's difficulty into surcharges and
// elevator discounts.
func accessCents(ap AccessPoint, cfg *pricing.Config) types.Cents {
	var c types.Cents
	switch ap.Parking {
	case ParkingHard:
		c += cfg.ParkingSurchargeHard
	case ParkingMedium:
		c += cfg.ParkingSurchargeMedium
	}
	c += types.Cents(carryBlocks(ap.CarryDistanceM)) * cfg.CarrySurchargePer25m
	switch ap.Elevator {
	case ElevatorSmall:
		c -= cfg.ElevatorDiscountSmall
	case ElevatorLarge:
		c -= cfg.ElevatorDiscountLarge
	default:
		if ap.Floor > 0 {
			c += types.Cents(ap.Floor) * cfg.StairsSurchargePerFlr
		}
	}
	return c
}

// carryBlocks buckets the carry distance into 25 m blocks, capped at 200 m.
func carryBlocks(meters float64) int {
	return int(math.Round(types.Clamp(meters, 0, 200) / 25))
}
