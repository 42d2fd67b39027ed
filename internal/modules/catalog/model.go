// README: Catalog aggregate: inventory items the customer picks in the wizard
// plus bookable add-on service options.
package catalog

import "umzug/internal/types"

// ModuleSlug identifies which booking module owns a service option.
type ModuleSlug string

const (
	ModuleMontage    ModuleSlug = "MONTAGE"
	ModuleEntsorgung ModuleSlug = "ENTSORGUNG"
	ModuleSpecial    ModuleSlug = "SPECIAL"
)

// PricingType controls how a service option's default price is applied.
type PricingType string

const (
	PricingFlat    PricingType = "FLAT"
	PricingPerUnit PricingType = "PER_UNIT"
	PricingPerM3   PricingType = "PER_M3"
	PricingPerHour PricingType = "PER_HOUR"
)

// Item is one inventory catalog entry (sofa, washing machine, ...).
// Immutable for the lifetime of a quote.
type Item struct {
	ID                  string
	CategoryKey         string
	Name                string
	DefaultVolumeM3     float64
	LaborMinutesPerUnit int
	IsHeavy             bool
}

// ServiceOption is a bookable add-on outside the base catalog, owned by one
// of the MONTAGE/ENTSORGUNG/SPECIAL modules.
type ServiceOption struct {
	Code                string
	Module              ModuleSlug
	PricingType         PricingType
	DefaultPriceCents   types.Cents
	DefaultLaborMinutes int
	IsHeavy             bool
	RequiresQuantity    bool
}

// ItemsByID builds the lookup map the estimate engine works with.
func ItemsByID(items []Item) map[string]Item {
	m := make(map[string]Item, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}

// OptionsByCode builds the lookup map for selected service option codes.
func OptionsByCode(options []ServiceOption) map[string]ServiceOption {
	m := make(map[string]ServiceOption, len(options))
	for _, o := range options {
		m[o.Code] = o
	}
	return m
}
