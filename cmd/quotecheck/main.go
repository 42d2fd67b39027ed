// README: Quote and availability smoke-check CLI. Runs a demo estimate and
// slot search against built-in fixtures, or against live Postgres/Redis when
// -live is set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"umzug/internal/config"
	"umzug/internal/infra"
	"umzug/internal/modules/availability"
	"umzug/internal/modules/catalog"
	"umzug/internal/modules/distance"
	"umzug/internal/modules/estimate"
	"umzug/internal/modules/pricing"
	"umzug/internal/modules/quote"
	"umzug/internal/types"
)

type options struct {
	live     bool
	volume   float64
	km       float64
	speed    string
	context  string
	promo    string
	fromDate string
	days     int
}

func main() {
	var opts options
	flag.BoolVar(&opts.live, "live", false, "use Postgres/Redis from the environment instead of fixtures")
	flag.Float64Var(&opts.volume, "volume", 24, "move volume in m³")
	flag.Float64Var(&opts.km, "km", 10, "route distance in km (fixture mode)")
	flag.StringVar(&opts.speed, "speed", "STANDARD", "speed tier: ECONOMY, STANDARD or EXPRESS")
	flag.StringVar(&opts.context, "context", "MOVING", "booking context: MOVING, COMBO, MONTAGE, ENTSORGUNG or SPECIAL")
	flag.StringVar(&opts.promo, "promo", "", "promo code")
	flag.StringVar(&opts.fromDate, "from", "", "slot search start date (YYYY-MM-DD, default today)")
	flag.IntVar(&opts.days, "days", 14, "slot search window in days")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatalf("[quotecheck] %v", err)
	}
}

func run(opts options) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	var (
		snapSource pricing.SnapshotSource
		items      quote.ItemSource
		schedStore availability.ScheduleStore
		resolver   quote.RouteResolver
	)
	if opts.live {
		db, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("connect db: %w", err)
		}
		defer db.Close()

		rdb := infra.NewRedis(cfg.Redis.Addr)
		defer rdb.Close()

		var provider distance.RouteProvider
		if cfg.Routing.Provider == "google" {
			provider, err = distance.NewGoogleProvider(cfg.Routing.GoogleAPIKey)
			if err != nil {
				return err
			}
		} else {
			provider = distance.NewORSProvider(cfg.Routing.ORSBaseURL, cfg.Routing.ORSAPIKey, cfg.Routing.Profile)
		}
		geocoder := distance.NewNominatimGeocoder(cfg.Routing.NominatimURL, cfg.Routing.UserAgent)
		cache := distance.NewCache(rdb, cfg.Routing.CacheTTL)
		resolver = distance.NewResolver(geocoder, provider, cache, cfg.Routing.Profile)

		snapSource = pricing.NewStore(db)
		items = catalog.NewStore(db)
		schedStore = availability.NewStore(db)
	} else {
		fx := newFixtures(opts.km)
		snapSource = fx
		items = fx
		schedStore = fx
		resolver = fx
	}

	runtime := pricing.NewRuntimeCache(driveOverrideSource{
		SnapshotSource: snapSource,
		perKm:          cfg.Pricing.PerKmOverride,
		minDrive:       cfg.Pricing.MinDriveOverride,
	})

	calc := quote.NewCalculator(runtime, items, resolver)
	q, err := calc.Calculate(ctx, quote.Draft{
		Context: quote.Context(opts.context),
		Speed:   types.Speed(opts.speed),
		Payload: estimate.Payload{
			ManualVolumeM3: opts.volume,
			PromoCode:      opts.promo,
		},
		FromAddress:   distance.Address{Raw: "Alexanderplatz 1, 10178 Berlin"},
		ToAddress:     distance.Address{Raw: "Rathausmarkt 1, 20095 Hamburg"},
		AllowFallback: true,
	})
	if err != nil {
		return err
	}
	printQuote(q)

	from := time.Now().In(loc)
	if opts.fromDate != "" {
		from, err = time.ParseInLocation("2006-01-02", opts.fromDate, loc)
		if err != nil {
			return fmt.Errorf("parse -from: %w", err)
		}
	}
	svc := availability.NewService(schedStore, runtime, loc)
	slots, err := svc.Search(ctx, availability.SearchRequest{
		From:     from,
		To:       from.AddDate(0, 0, opts.days),
		Speed:    types.Speed(opts.speed),
		VolumeM3: q.Chosen.TotalVolumeM3,
	})
	if err != nil {
		return err
	}
	printSlots(slots)
	return nil
}

// driveOverrideSource applies the env drive overrides to each snapshot as it
// is fetched, before the cache publishes it. Mutating a published snapshot
// instead would race with concurrent readers.
type driveOverrideSource struct {
	pricing.SnapshotSource
	perKm    types.Cents
	minDrive types.Cents
}

func (s driveOverrideSource) FetchSnapshot(ctx context.Context) (*pricing.Snapshot, error) {
	snap, err := s.SnapshotSource.FetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	snap.Config.ApplyDriveOverrides(s.perKm, s.minDrive)
	return snap, nil
}

func printQuote(q *quote.Quote) {
	fmt.Println("== Quote ==")
	if q.HasDistance {
		fmt.Printf("distance: %.2f km (%s)\n", q.DistanceKm, q.DistanceSource)
	}
	fmt.Printf("volume: %.2f m³, labor: %.2f h, subtotal: %s\n",
		q.Chosen.TotalVolumeM3, q.Chosen.LaborHours, euro(q.Chosen.Subtotal))
	for _, pkg := range q.Packages {
		fmt.Printf("  %-8s net %s  vat %s  gross %s  band [%s .. %s]\n",
			pkg.Speed, euro(pkg.Net), euro(pkg.VAT), euro(pkg.Gross), euro(pkg.Min), euro(pkg.Max))
	}
	for _, l := range q.Lines {
		fmt.Printf("  line %-11s %s  [%s .. %s]\n", l.Kind, euro(l.Total), euro(l.Min), euro(l.Max))
	}
	if q.Chosen.PromoApplied != "" {
		fmt.Printf("promo %s: -%s\n", q.Chosen.PromoApplied, euro(q.Chosen.Discount))
	}
}

func printSlots(slots []availability.Slot) {
	fmt.Printf("== Slots (%d) ==\n", len(slots))
	shown := len(slots)
	if shown > 10 {
		shown = 10
	}
	for _, s := range slots[:shown] {
		fmt.Printf("  %s - %s\n", s.Start.Format("Mon 2006-01-02 15:04"), s.End.Format("15:04"))
	}
	if shown < len(slots) {
		fmt.Printf("  ... %d more\n", len(slots)-shown)
	}
	if len(slots) == 0 {
		fmt.Fprintln(os.Stderr, "no bookable slots in the window")
	}
}

func euro(c types.Cents) string {
	return fmt.Sprintf("%d.%02d€", c/100, c%100)
}
