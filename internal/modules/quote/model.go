// README: Quote aggregate: the customer-facing packages and service line
// breakdown built on top of the estimate engine.
package quote

import (
	"umzug/internal/modules/catalog"
	"umzug/internal/modules/distance"
	"umzug/internal/modules/estimate"
	"umzug/internal/types"
)

// Context is the wizard flow the draft came from. It fixes the service type,
// the owning module and the set of service lines.
type Context string

const (
	ContextMoving     Context = "MOVING"
	ContextCombo      Context = "COMBO"
	ContextMontage    Context = "MONTAGE"
	ContextEntsorgung Context = "ENTSORGUNG"
	ContextSpecial    Context = "SPECIAL"
)

// ServiceTypeAndModule maps a wizard context onto the estimate inputs.
func (c Context) ServiceTypeAndModule() (types.ServiceType, catalog.ModuleSlug) {
	switch c {
	case ContextCombo:
		return types.ServiceBoth, ""
	case ContextMontage:
		return types.ServiceMoving, catalog.ModuleMontage
	case ContextEntsorgung:
		return types.ServiceDisposal, catalog.ModuleEntsorgung
	case ContextSpecial:
		return types.ServiceMoving, catalog.ModuleSpecial
	default:
		return types.ServiceMoving, ""
	}
}

// NeedsRoute reports whether the context has a moving leg that bills
// driving distance.
func (c Context) NeedsRoute() bool {
	return c == ContextMoving || c == ContextCombo
}

// ServiceKind identifies one line of the cost breakdown.
type ServiceKind string

const (
	KindUmzug      ServiceKind = "UMZUG"
	KindMontage    ServiceKind = "MONTAGE"
	KindEntsorgung ServiceKind = "ENTSORGUNG"
	KindSpecial    ServiceKind = "SPECIAL"
)

// lineKinds returns the breakdown lines a context produces, in order.
func (c Context) lineKinds() []ServiceKind {
	switch c {
	case ContextCombo:
		return []ServiceKind{KindUmzug, KindEntsorgung}
	case ContextMontage:
		return []ServiceKind{KindMontage}
	case ContextEntsorgung:
		return []ServiceKind{KindEntsorgung}
	case ContextSpecial:
		return []ServiceKind{KindSpecial}
	default:
		return []ServiceKind{KindUmzug}
	}
}

// Draft is a validated customer draft entering the calculator.
type Draft struct {
	Context Context
	Speed   types.Speed
	Payload estimate.Payload

	FromAddress distance.Address
	ToAddress   distance.Address
	// AllowFallback degrades a routing failure to a road estimate instead of
	// failing the quote.
	AllowFallback bool
}

// Package is one speed tier's price, with VAT and the uncertainty band.
type Package struct {
	Speed types.Speed
	Tier  types.Tier
	Net   types.Cents
	VAT   types.Cents
	Gross types.Cents
	Min   types.Cents
	Max   types.Cents
}

// Line is one service line of the cost breakdown. Total is the line's share
// of the chosen package's net, allocated with remainder absorption.
type Line struct {
	Kind         ServiceKind
	Title        string
	Weight       types.Cents
	OptionsCents types.Cents
	Total        types.Cents
	Min          types.Cents
	Max          types.Cents
}

// Quote is the full calculator output.
type Quote struct {
	Packages [3]Package
	Chosen   estimate.Result
	Lines    []Line

	HasDistance    bool
	DistanceKm     float64
	DistanceSource distance.Source
}
