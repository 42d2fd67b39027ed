// README: Built-in demo fixtures so the tool runs without Postgres or Redis.
package main

import (
	"context"
	"time"

	"umzug/internal/modules/availability"
	"umzug/internal/modules/catalog"
	"umzug/internal/modules/distance"
	"umzug/internal/modules/pricing"
)

type fixtures struct {
	km float64
}

func newFixtures(km float64) *fixtures {
	return &fixtures{km: km}
}

func (f *fixtures) MarkerVersion(ctx context.Context) (string, error) {
	return "fixture", nil
}

func (f *fixtures) FetchSnapshot(ctx context.Context) (*pricing.Snapshot, error) {
	return &pricing.Snapshot{
		Config: pricing.Config{
			ID:       "fixture",
			Currency: "EUR",

			MovingBaseFee:   15000,
			DisposalBaseFee: 12000,
			HourlyRate:      4500,
			PerM3Moving:     1200,
			PerM3Disposal:   1800,
			PerKm:           150,
			MinDrive:        2500,

			HeavyItemSurcharge:     3000,
			StairsSurchargePerFlr:  1500,
			CarrySurchargePer25m:   800,
			ParkingSurchargeMedium: 1000,
			ParkingSurchargeHard:   2000,
			ElevatorDiscountSmall:  500,
			ElevatorDiscountLarge:  1000,

			UncertaintyPercent: 10,

			EconomyMultiplier:  0.9,
			StandardMultiplier: 1,
			ExpressMultiplier:  1.25,

			EconomyLeadDays:  14,
			StandardLeadDays: 7,
			ExpressLeadDays:  2,

			MontageMinimumOrder:    9900,
			EntsorgungMinimumOrder: 14900,
		},
		ServiceOptions: []catalog.ServiceOption{
			{Code: "FURNITURE_ASSEMBLY", Module: catalog.ModuleMontage, PricingType: catalog.PricingFlat, DefaultPriceCents: 8000, DefaultLaborMinutes: 60},
			{Code: "DISPOSAL_BAG", Module: catalog.ModuleEntsorgung, PricingType: catalog.PricingPerUnit, DefaultPriceCents: 900, RequiresQuantity: true},
		},
		PromoRules: []pricing.PromoRule{
			{ID: "fx-promo", Code: "WELCOME10", Active: true, DiscountType: pricing.DiscountPercent, DiscountValue: 10, MaxDiscountCents: 10000},
		},
		Version: "fixture",
	}, nil
}

func (f *fixtures) ListActiveItems(ctx context.Context) ([]catalog.Item, error) {
	return []catalog.Item{
		{ID: "sofa", CategoryKey: "living", Name: "Sofa", DefaultVolumeM3: 1.5, LaborMinutesPerUnit: 15},
		{ID: "bett", CategoryKey: "bedroom", Name: "Bett", DefaultVolumeM3: 1.2, LaborMinutesPerUnit: 20},
		{ID: "klavier", CategoryKey: "special", Name: "Klavier", DefaultVolumeM3: 2, LaborMinutesPerUnit: 30, IsHeavy: true},
	}, nil
}

func (f *fixtures) ListActiveRules(ctx context.Context) ([]availability.Rule, error) {
	var rules []availability.Rule
	for wd := 1; wd <= 5; wd++ {
		rules = append(rules, availability.Rule{
			ID:           "fixture-wd",
			Weekday:      wd,
			StartMinutes: 8 * 60,
			EndMinutes:   18 * 60,
			SlotMinutes:  60,
			Capacity:     2,
			Active:       true,
		})
	}
	return rules, nil
}

func (f *fixtures) ListExceptions(ctx context.Context, from, to time.Time) ([]availability.Exception, error) {
	return nil, nil
}

func (f *fixtures) ListBookings(ctx context.Context, from, to time.Time) ([]availability.Booking, error) {
	return nil, nil
}

func (f *fixtures) RouteDistance(ctx context.Context, from, to distance.Address, allowFallback bool) (distance.Result, error) {
	return distance.Result{Km: f.km, Source: distance.SourceProvider}, nil
}
