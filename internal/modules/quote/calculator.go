// README: Quote calculator. Orchestrates the runtime pricing cache, the
// distance resolver and the estimate engine into the three-package quote.
package quote

import (
	"context"
	"time"

	"umzug/internal/modules/catalog"
	"umzug/internal/modules/distance"
	"umzug/internal/modules/estimate"
	"umzug/internal/modules/pricing"
	"umzug/internal/types"
)

const vatRate = 0.19

// ItemSource supplies the active catalog. Implemented by catalog.Store.
type ItemSource interface {
	ListActiveItems(ctx context.Context) ([]catalog.Item, error)
}

// RouteResolver resolves a route distance between two addresses.
// Implemented by distance.Resolver.
type RouteResolver interface {
	RouteDistance(ctx context.Context, from, to distance.Address, allowFallback bool) (distance.Result, error)
}

type Calculator struct {
	runtime *pricing.RuntimeCache
	items   ItemSource
	// routes may be nil; the engine then falls back to its straight-line
	// approximation when coordinates are present.
	routes RouteResolver
	now    func() time.Time
}

func NewCalculator(runtime *pricing.RuntimeCache, items ItemSource, routes RouteResolver) *Calculator {
	return &Calculator{runtime: runtime, items: items, routes: routes, now: time.Now}
}

var quoteSpeeds = [3]types.Speed{types.SpeedEconomy, types.SpeedStandard, types.SpeedExpress}

// Calculate produces the full quote for a draft. A missing pricing snapshot
// surfaces as pricing.ErrPricingUnavailable.
func (c *Calculator) Calculate(ctx context.Context, d Draft) (*Quote, error) {
	snap, err := c.runtime.Get(ctx)
	if err != nil {
		return nil, err
	}
	itemList, err := c.items.ListActiveItems(ctx)
	if err != nil {
		return nil, err
	}
	items := catalog.ItemsByID(itemList)
	options := catalog.OptionsByCode(snap.ServiceOptions)

	serviceType, module := d.Context.ServiceTypeAndModule()
	payload := d.Payload
	payload.ServiceType = serviceType
	payload.Module = module

	var resolved *distance.Result
	if d.Context.NeedsRoute() && c.routes != nil && d.FromAddress.Raw != "" && d.ToAddress.Raw != "" {
		res, err := c.routes.RouteDistance(ctx, d.FromAddress, d.ToAddress, d.AllowFallback)
		if err != nil {
			return nil, err
		}
		resolved = &res
	}

	chosenSpeed := d.Speed
	if chosenSpeed == "" {
		chosenSpeed = types.SpeedStandard
	}

	q := &Quote{}
	u := snap.Config.Uncertainty()
	var chosen estimate.Result
	for i, speed := range quoteSpeeds {
		pl := payload
		pl.Speed = speed
		pl.Tier = types.TierForSpeed(speed)
		res := estimate.Estimate(estimate.Request{
			Payload:  pl,
			Items:    items,
			Options:  options,
			Config:   &snap.Config,
			Promos:   snap.PromoRules,
			Distance: resolved,
			Now:      c.now(),
		})
		q.Packages[i] = buildPackage(speed, pl.Tier, res.Total, u)
		if speed == chosenSpeed {
			chosen = res
		}
	}
	q.Chosen = chosen
	q.HasDistance = chosen.HasDistance
	q.DistanceKm = chosen.DistanceKm
	q.DistanceSource = chosen.DistanceSource

	q.Lines = buildLines(d.Context, payload, options, &snap.Config, chosen)
	return q, nil
}

func buildPackage(speed types.Speed, tier types.Tier, net types.Cents, u float64) Package {
	spread := net.MulRound(u)
	vat := net.MulRound(vatRate)
	return Package{
		Speed: speed,
		Tier:  tier,
		Net:   net,
		VAT:   vat,
		Gross: net + vat,
		Min:   (net - spread).ClampMin0(),
		Max:   net + spread,
	}
}

// buildLines computes per-line weights from the chosen estimate and splits
// its total across them with remainder absorption.
func buildLines(ctx Context, payload estimate.Payload, options map[string]catalog.ServiceOption, cfg *pricing.Config, chosen estimate.Result) []Line {
	kinds := ctx.lineKinds()
	lines := make([]Line, len(kinds))
	for i, kind := range kinds {
		lines[i] = Line{
			Kind:         kind,
			Title:        lineTitle(kind),
			Weight:       lineWeight(kind, payload, cfg, chosen),
			OptionsCents: lineOptionCents(kind, payload, options, chosen.LaborHours),
		}
		lines[i].Weight += lines[i].OptionsCents
	}

	weights := make([]types.Cents, len(lines))
	for i := range lines {
		weights[i] = lines[i].Weight
	}
	totals := AllocateCents(chosen.Total, weights)

	u := cfg.Uncertainty()
	for i := range lines {
		lines[i].Total = totals[i]
		spread := totals[i].MulRound(u)
		lines[i].Min = (totals[i] - spread).ClampMin0()
		lines[i].Max = totals[i] + spread
	}
	return lines
}

func lineWeight(kind ServiceKind, payload estimate.Payload, cfg *pricing.Config, chosen estimate.Result) types.Cents {
	switch kind {
	case KindUmzug:
		return cfg.MovingBaseFee +
			types.RoundCents(chosen.MoveVolumeM3*float64(cfg.PerM3Moving)) +
			chosen.DriveCharge
	case KindEntsorgung:
		return cfg.DisposalBaseFeeFor(payload.Module) +
			types.RoundCents(chosen.DisposalVolumeM3*float64(cfg.PerM3Disposal))
	default:
		return cfg.BaseFeeFor(payload.Module)
	}
}

// lineOptionCents attributes selected options to the line owning their module.
func lineOptionCents(kind ServiceKind, payload estimate.Payload, options map[string]catalog.ServiceOption, laborHours float64) types.Cents {
	var sum types.Cents
	for _, sel := range payload.Options {
		opt, ok := options[sel.Code]
		if !ok {
			continue
		}
		if payload.Module != "" && opt.Module != payload.Module {
			continue
		}
		if moduleKind(opt.Module) != kind {
			continue
		}
		qty := 1
		if opt.RequiresQuantity {
			qty = max(1, sel.Quantity)
		}
		sum += estimate.OptionCost(opt, qty, laborHours)
	}
	return sum
}

func moduleKind(m catalog.ModuleSlug) ServiceKind {
	switch m {
	case catalog.ModuleMontage:
		return KindMontage
	case catalog.ModuleEntsorgung:
		return KindEntsorgung
	case catalog.ModuleSpecial:
		return KindSpecial
	default:
		return KindUmzug
	}
}

func lineTitle(kind ServiceKind) string {
	switch kind {
	case KindMontage:
		return "Montage"
	case KindEntsorgung:
		return "Entsorgung"
	case KindSpecial:
		return "Sonderleistung"
	default:
		return "Umzug"
	}
}
