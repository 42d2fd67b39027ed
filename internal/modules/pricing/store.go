// README: Pricing store backed by PostgreSQL. Loads the active rate card,
// the service option list and the promo rule set as one snapshot.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"umzug/internal/modules/catalog"
)

// ErrNoActiveConfig is returned when no rate card row is marked active.
var ErrNoActiveConfig = errors.New("pricing: no active config")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) ActiveConfig(ctx context.Context) (Config, error) {
	var c Config
	err := s.db.QueryRow(ctx, `
        SELECT id, currency, updated_at,
               moving_base_fee_cents, disposal_base_fee_cents, hourly_rate_cents,
               per_m3_moving_cents, per_m3_disposal_cents, per_km_cents, min_drive_cents,
               heavy_item_surcharge_cents, stairs_surcharge_per_floor_cents,
               carry_surcharge_per_25m_cents, parking_surcharge_medium_cents,
               parking_surcharge_hard_cents, elevator_discount_small_cents,
               elevator_discount_large_cents, uncertainty_percent,
               economy_multiplier, standard_multiplier, express_multiplier,
               economy_lead_days, standard_lead_days, express_lead_days,
               montage_base_fee_cents, entsorgung_base_fee_cents,
               montage_standard_mult, montage_plus_mult, montage_premium_mult,
               entsorgung_standard_mult, entsorgung_plus_mult, entsorgung_premium_mult,
               montage_minimum_order_cents, entsorgung_minimum_order_cents
        FROM pricing_config
        WHERE active
        ORDER BY updated_at DESC
        LIMIT 1`,
	).Scan(
		&c.ID, &c.Currency, &c.UpdatedAt,
		&c.MovingBaseFee, &c.DisposalBaseFee, &c.HourlyRate,
		&c.PerM3Moving, &c.PerM3Disposal, &c.PerKm, &c.MinDrive,
		&c.HeavyItemSurcharge, &c.StairsSurchargePerFlr,
		&c.CarrySurchargePer25m, &c.ParkingSurchargeMedium,
		&c.ParkingSurchargeHard, &c.ElevatorDiscountSmall,
		&c.ElevatorDiscountLarge, &c.UncertaintyPercent,
		&c.EconomyMultiplier, &c.StandardMultiplier, &c.ExpressMultiplier,
		&c.EconomyLeadDays, &c.StandardLeadDays, &c.ExpressLeadDays,
		&c.MontageBaseFee, &c.EntsorgungBaseFee,
		&c.MontageStandardMult, &c.MontagePlusMult, &c.MontagePremiumMult,
		&c.EntsorgungStandardMult, &c.EntsorgungPlusMult, &c.EntsorgungPremiumMult,
		&c.MontageMinimumOrder, &c.EntsorgungMinimumOrder,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Config{}, ErrNoActiveConfig
	}
	return c, err
}

func (s *Store) ListServiceOptions(ctx context.Context) ([]catalog.ServiceOption, error) {
	rows, err := s.db.Query(ctx, `
        SELECT code, module, pricing_type, default_price_cents,
               default_labor_minutes, is_heavy, requires_quantity
        FROM service_options
        WHERE active
        ORDER BY module, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []catalog.ServiceOption
	for rows.Next() {
		var o catalog.ServiceOption
		if err := rows.Scan(
			&o.Code, &o.Module, &o.PricingType, &o.DefaultPriceCents,
			&o.DefaultLaborMinutes, &o.IsHeavy, &o.RequiresQuantity,
		); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (s *Store) ListPromoRules(ctx context.Context) ([]PromoRule, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, code, COALESCE(module, ''), COALESCE(service_type_scope, ''),
               discount_type, discount_value, min_order_cents, max_discount_cents,
               valid_from, valid_to, active, updated_at
        FROM promo_rules
        ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []PromoRule
	for rows.Next() {
		var r PromoRule
		if err := rows.Scan(
			&r.ID, &r.Code, &r.Module, &r.ServiceTypeScope,
			&r.DiscountType, &r.DiscountValue, &r.MinOrderCents, &r.MaxDiscountCents,
			&r.ValidFrom, &r.ValidTo, &r.Active, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		promos = append(promos, r)
	}
	return promos, rows.Err()
}

// MarkerVersion aggregates the cheap change marker the runtime cache polls:
// the active config row's identity plus the newest update timestamps of the
// option and promo tables.
func (s *Store) MarkerVersion(ctx context.Context) (string, error) {
	var (
		id                   string
		cfgAt, optAt, promAt time.Time
	)
	err := s.db.QueryRow(ctx, `
        SELECT id, updated_at
        FROM pricing_config
        WHERE active
        ORDER BY updated_at DESC
        LIMIT 1`,
	).Scan(&id, &cfgAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNoActiveConfig
	}
	if err != nil {
		return "", err
	}
	err = s.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(updated_at), 'epoch'::timestamptz) FROM service_options`,
	).Scan(&optAt)
	if err != nil {
		return "", err
	}
	err = s.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(updated_at), 'epoch'::timestamptz) FROM promo_rules`,
	).Scan(&promAt)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d:%d:%d", id, cfgAt.UnixMilli(), optAt.UnixMilli(), promAt.UnixMilli()), nil
}

// FetchSnapshot loads a full consistent snapshot tagged with its marker.
func (s *Store) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	version, err := s.MarkerVersion(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := s.ActiveConfig(ctx)
	if err != nil {
		return nil, err
	}
	options, err := s.ListServiceOptions(ctx)
	if err != nil {
		return nil, err
	}
	promos, err := s.ListPromoRules(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Config:         cfg,
		ServiceOptions: options,
		PromoRules:     promos,
		Version:        version,
	}, nil
}
