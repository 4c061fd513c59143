// Package pipeline orchestrates a full report run: load, scope, classify,
// filter, aggregate, enrich, export. Every result is computed from the
// caller's role-scoped view; nothing downstream widens visibility.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/hudsonrx/claimsight/internal/aggregate"
	"github.com/hudsonrx/claimsight/internal/config"
	"github.com/hudsonrx/claimsight/internal/enrich"
	"github.com/hudsonrx/claimsight/internal/export"
	"github.com/hudsonrx/claimsight/internal/load"
	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/npi"
	"github.com/hudsonrx/claimsight/internal/revenue"
	"github.com/hudsonrx/claimsight/internal/scope"
	"github.com/hudsonrx/claimsight/internal/snapshot"
	"github.com/hudsonrx/claimsight/internal/unfilled"
)

// Loaded datasets are cached per file for the life of the process. Claims
// snapshots never expire (the key carries the file's mtime, so a replaced
// file reloads); the roster is rechecked every few minutes because it is
// edited out-of-band.
var (
	claimsCache = snapshot.NewStore[*model.ClaimsTable]()
	rosterCache = snapshot.NewStore[[]model.RosterEntry]()
)

const rosterTTL = 5 * time.Minute

func cacheKey(path string) string {
	if stat, err := os.Stat(path); err == nil {
		return fmt.Sprintf("%s@%d", path, stat.ModTime().UnixNano())
	}
	return path
}

// ResetCaches drops all cached datasets.
func ResetCaches() {
	claimsCache.Clear()
	rosterCache.Clear()
}

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Options selects what a run computes beyond the core report.
type Options struct {
	Range            DateRange
	Rep              string // narrow to one rep ("" or "All" keeps everything)
	ExcludePotential bool   // count collected cash only
	WithRoster       bool
	ResolveNPIs      bool // query the registry for roster locations
	ExportDir        string
	Workbook         bool
}

// Result is everything a report surface renders.
type Result struct {
	Summary model.ReportSummary
	KPIs    model.KPIBlock
	Empty   bool // no claims in scope and range; render the no-data state

	Claims      *model.ClaimsTable
	ByRep       []aggregate.Group
	ByDrug      []aggregate.Group
	ByPhysician []aggregate.Group
	Daily       []aggregate.DayPoint
	Monthly340B []aggregate.Group
	Unfilled    *unfilled.Report
	Doctors     []model.DoctorSummary
	RepCoverage []enrich.RepCoverage
}

// Run executes the report pipeline for one user. today pins every windowed
// computation so a run is reproducible.
func Run(ctx context.Context, log zerolog.Logger, cfg *config.Config, user model.User, today time.Time, opts Options) (*Result, error) {
	totalStart := time.Now()
	res := &Result{}
	res.Summary.Role = user.Role.String()

	start, err := cfg.Start()
	if err != nil {
		return nil, &PipelineError{Phase: "load", Err: err}
	}

	loadStart := time.Now()
	log.Info().Str("file", cfg.ClaimsFile).Msg("loading claims")
	table, err := claimsCache.GetOrLoad(cacheKey(cfg.ClaimsFile)+start.Format("20060102"), 0,
		func() (*model.ClaimsTable, error) { return load.Claims(cfg.ClaimsFile, start) })
	if err != nil {
		return nil, &PipelineError{Phase: "load", Err: err}
	}
	res.Summary.ClaimsLoaded = len(table.Claims)

	var roster []model.RosterEntry
	if opts.WithRoster {
		log.Info().Str("file", cfg.RosterFile).Msg("loading roster")
		roster, err = rosterCache.GetOrLoad(cacheKey(cfg.RosterFile), rosterTTL,
			func() ([]model.RosterEntry, error) { return load.Roster(cfg.RosterFile) })
		if err != nil {
			return nil, &PipelineError{Phase: "load", Err: err}
		}
		res.Summary.RosterLoaded = len(roster)
	}
	res.Summary.DurationLoad = time.Since(loadStart)

	computeStart := time.Now()
	scoped := scope.Claims(table.Claims, user)
	res.Summary.ClaimsScoped = len(scoped)
	log.Info().
		Str("role", user.Role.String()).
		Int("loaded", len(table.Claims)).
		Int("scoped", len(scoped)).
		Msg("scoped claims")

	classified := revenue.Classify(scoped, today)
	claims := FilterClaims(FilterRep(classified, opts.Rep), opts.Range)
	if opts.ExcludePotential {
		claims = StripPotential(claims)
	}
	res.Summary.ClaimsInRange = len(claims)
	res.Claims = &model.ClaimsTable{Header: table.Header, Claims: claims}

	if len(claims) == 0 {
		res.Empty = true
		log.Warn().Str("range", opts.Range.Label()).Msg("no claims in scope and range")
	}

	res.KPIs = aggregate.KPIs(claims, today)
	res.ByRep = aggregate.By(claims, aggregate.ByRep)
	aggregate.SortByTotal(res.ByRep)
	res.ByDrug = aggregate.By(claims, aggregate.ByDrug)
	aggregate.SortByTotal(res.ByDrug)
	res.ByPhysician = aggregate.By(claims, aggregate.ByPhysician)
	aggregate.SortByTotal(res.ByPhysician)
	res.Daily = aggregate.DailySeries(claims)
	only340B := make([]model.Claim, 0, len(claims))
	for i := range claims {
		if claims[i].InventoryType == model.Inventory340B {
			only340B = append(only340B, claims[i])
		}
	}
	res.Monthly340B = aggregate.MonthlyActual(only340B)

	// The worklist always covers the full scoped ledger; the classifier
	// applies its own 30-day window, so a narrow display range or rep
	// filter must not hide open scripts.
	res.Unfilled = unfilled.Build(classified, today)
	res.Summary.UnfilledOpen = res.Unfilled.TotalUnfilled

	if opts.WithRoster {
		scopedRoster := scope.Roster(roster, user)
		res.Summary.RosterScoped = len(scopedRoster)

		locations := map[string]npi.Location{}
		if opts.ResolveNPIs {
			client := npi.NewClient("")
			cache := npi.OpenCache(cfg.NPICachePath)
			locations = npi.Resolve(ctx, client, cache, enrich.NPIs(scopedRoster), log)
		}
		res.Doctors = enrich.Doctors(scopedRoster, claims, locations)
		res.RepCoverage = enrich.ByRep(res.Doctors)
	}
	res.Summary.DurationCompute = time.Since(computeStart)

	if opts.ExportDir != "" {
		exportStart := time.Now()
		if err := runExports(res, opts, log); err != nil {
			return nil, &PipelineError{Phase: "export", Err: err}
		}
		res.Summary.DurationExport = time.Since(exportStart)
	}

	res.Summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Int("claims", res.Summary.ClaimsInRange).
		Int("unfilled", res.Summary.UnfilledOpen).
		Dur("elapsed", res.Summary.DurationTotal).
		Msg("report complete")
	return res, nil
}

func runExports(res *Result, opts Options, log zerolog.Logger) error {
	if err := os.MkdirAll(opts.ExportDir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	label := opts.Range.Label()

	files := []struct {
		name  string
		table model.Table
	}{
		{"claims_detail.csv", export.ClaimTable(res.Claims)},
		{"summary_by_rep.csv", export.GroupTable(res.ByRep, model.ColBizDevName)},
		{"summary_by_drug.csv", export.GroupTable(res.ByDrug, model.ColDispensedDrug)},
		{"summary_by_physician.csv", export.GroupTable(res.ByPhysician, model.ColPrescriber)},
		{"unfilled_worklist.csv", export.UnfilledTable(res.Unfilled)},
		{"daily_series.csv", export.DailyTable(res.Daily)},
		{"monthly_340b.csv", export.MonthlyTable(res.Monthly340B)},
	}
	if len(res.Doctors) > 0 {
		files = append(files, struct {
			name  string
			table model.Table
		}{"doctor_coverage.csv", export.DoctorTable(res.Doctors)})
	}

	for _, f := range files {
		path := filepath.Join(opts.ExportDir, f.name)
		if err := export.WriteCSV(path, f.table, label); err != nil {
			return err
		}
		res.Summary.ExportsOut = append(res.Summary.ExportsOut, path)
		log.Debug().Str("path", path).Msg("wrote export")
	}

	if opts.Workbook {
		path := filepath.Join(opts.ExportDir, "consolidated.xlsx")
		sheets := []export.Sheet{
			{Name: export.SheetByBizDev, Table: export.GroupTable(res.ByRep, model.ColBizDevName)},
			{Name: export.SheetByDrug, Table: export.GroupTable(res.ByDrug, model.ColDispensedDrug)},
			{Name: export.SheetByPhysician, Table: export.GroupTable(res.ByPhysician, model.ColPrescriber)},
			{Name: export.SheetClaims, Table: export.ClaimTable(res.Claims)},
		}
		if err := export.WriteWorkbook(path, sheets); err != nil {
			return err
		}
		res.Summary.ExportsOut = append(res.Summary.ExportsOut, path)
		log.Debug().Str("path", path).Msg("wrote workbook")
	}
	return nil
}
