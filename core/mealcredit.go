package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/utils"
	"go.uber.org/zap"
)

const defaultCreditChunk = 1000

type CreditOptions struct {
	Location  *time.Location
	ChunkSize int
}

// CreditGranter derives daily meal credits from attendance presence.
type CreditGranter struct {
	scans     ScanReader
	employees EmployeeLookup
	credits   MealCreditStore
	opts      CreditOptions
	logger    *zap.Logger
}

func NewCreditGranter(scans ScanReader, employees EmployeeLookup, credits MealCreditStore, opts CreditOptions, logger *zap.Logger) *CreditGranter {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultCreditChunk
	}
	return &CreditGranter{scans: scans, employees: employees, credits: credits, opts: opts, logger: logger}
}

type GrantResult struct {
	Date                    string   `json:"date"`
	GrantOT                 bool     `json:"grantOT"`
	EmployeesWithAttendance int      `json:"employeesWithAttendance"`
	LunchGranted            int      `json:"lunchGranted"`
	OTGranted               int      `json:"otGranted"`
	NotFoundCodes           []string `json:"notFoundCodes"`
	Errors                  []string `json:"errors"`
}

// GrantForDate grants lunch (and OT meal when grantOT) to every employee with
// at least one scan on the calendar date of date in the site location.
func (g *CreditGranter) GrantForDate(ctx context.Context, date time.Time, grantOT bool) (*GrantResult, error) {
	from, to := utils.DayWindow(date, g.opts.Location)
	result := &GrantResult{
		Date:          date.Format(utils.DateLayout),
		GrantOT:       grantOT,
		NotFoundCodes: []string{},
		Errors:        []string{},
	}

	codes, err := g.scans.DistinctEmployeeCodes(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	result.EmployeesWithAttendance = len(codes)
	if len(codes) == 0 {
		return result, nil
	}

	employees, notFound, err := g.resolve(ctx, codes)
	if err != nil {
		return nil, err
	}
	result.NotFoundCodes = notFound

	granted, failures := g.grant(ctx, date, employees, grantOT)
	result.LunchGranted = granted
	if grantOT {
		result.OTGranted = granted
	}
	result.Errors = append(result.Errors, failures...)

	g.logger.Info("meal credits granted",
		zap.String("date", result.Date),
		zap.Bool("grantOT", grantOT),
		zap.Int("attendance", result.EmployeesWithAttendance),
		zap.Int("lunch", result.LunchGranted),
		zap.Int("ot", result.OTGranted),
		zap.Int("notFound", len(result.NotFoundCodes)),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

type ImportResult struct {
	Date     string   `json:"date"`
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	NotFound []string `json:"notFound"`
	Errors   []string `json:"errors"`
}

// GrantOTForCodes grants lunch and OT meal to an explicit list of employee
// codes, as supplied by an overtime roster import.
func (g *CreditGranter) GrantOTForCodes(ctx context.Context, date time.Time, codes []string) (*ImportResult, error) {
	result := &ImportResult{
		Date:     date.Format(utils.DateLayout),
		NotFound: []string{},
		Errors:   []string{},
	}

	cleaned := utils.Unique(utils.Filter(utils.Map(codes, strings.TrimSpace), func(c string) bool { return c != "" }))
	if len(cleaned) == 0 {
		return result, nil
	}

	employees, notFound, err := g.resolve(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	result.NotFound = notFound

	granted, failures := g.grant(ctx, date, employees, true)
	result.Imported = granted
	result.Failed = len(employees) - granted
	result.Errors = append(result.Errors, failures...)
	return result, nil
}

type CreditStatus struct {
	Date       string            `json:"date"`
	Attendance AttendanceSummary `json:"attendance"`
	Credits    CreditSummary     `json:"credits"`
}

type AttendanceSummary struct {
	TotalScans      int64 `json:"totalScans"`
	UniqueEmployees int   `json:"uniqueEmployees"`
}

type CreditSummary struct {
	Total           int `json:"total"`
	LunchAvailable  int `json:"lunchAvailable"`
	OTMealAvailable int `json:"otMealAvailable"`
	LunchUsed       int `json:"lunchUsed"`
	OTMealUsed      int `json:"otMealUsed"`
}

func (g *CreditGranter) Status(ctx context.Context, date time.Time) (*CreditStatus, error) {
	from, to := utils.DayWindow(date, g.opts.Location)

	total, err := g.scans.CountScans(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count scans: %w", err)
	}
	codes, err := g.scans.DistinctEmployeeCodes(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	credits, err := g.Credits(ctx, date)
	if err != nil {
		return nil, err
	}

	status := &CreditStatus{
		Date:       date.Format(utils.DateLayout),
		Attendance: AttendanceSummary{TotalScans: total, UniqueEmployees: len(codes)},
		Credits:    CreditSummary{Total: len(credits)},
	}
	for _, c := range credits {
		if c.LunchAvailable {
			status.Credits.LunchAvailable++
		}
		if c.OTMealAvailable {
			status.Credits.OTMealAvailable++
		}
		if c.LunchUsed {
			status.Credits.LunchUsed++
		}
		if c.OTMealUsed {
			status.Credits.OTMealUsed++
		}
	}
	return status, nil
}

// Credits lists the meal credits for a date with their employees loaded.
func (g *CreditGranter) Credits(ctx context.Context, date time.Time) ([]model.MealCredit, error) {
	credits, err := g.credits.ListMealCredits(ctx, utils.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list meal credits: %w", err)
	}
	return credits, nil
}

// resolve maps codes to employees; unmatched codes are returned sorted.
func (g *CreditGranter) resolve(ctx context.Context, codes []string) ([]model.Employee, []string, error) {
	var employees []model.Employee
	for _, chunk := range utils.Chunk(codes, g.opts.ChunkSize) {
		found, err := g.employees.FindEmployeesByCodes(ctx, chunk)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch employees: %w", err)
		}
		employees = append(employees, found...)
	}

	known := make(map[string]struct{}, len(employees))
	for _, e := range employees {
		known[e.Code] = struct{}{}
	}
	notFound := utils.Filter(codes, func(c string) bool {
		_, ok := known[c]
		return !ok
	})
	sort.Strings(notFound)
	return employees, notFound, nil
}

// grant upserts credits chunk by chunk. A failed chunk is reported and the
// remaining chunks still run.
func (g *CreditGranter) grant(ctx context.Context, date time.Time, employees []model.Employee, grantOT bool) (int, []string) {
	day := utils.DateOf(date)
	credits := utils.Map(employees, func(e model.Employee) model.MealCredit {
		return model.MealCredit{
			EmployeeID:      e.ID,
			Date:            day,
			LunchAvailable:  true,
			OTMealAvailable: grantOT,
		}
	})

	granted := 0
	failures := []string{}
	for i, chunk := range utils.Chunk(credits, g.opts.ChunkSize) {
		if err := g.credits.GrantMealCredits(ctx, chunk, grantOT); err != nil {
			g.logger.Error("meal credit chunk failed", zap.Int("chunk", i), zap.Int("size", len(chunk)), zap.Error(err))
			failures = append(failures, fmt.Sprintf("chunk %d: %v", i, err))
			continue
		}
		granted += len(chunk)
	}
	return granted, failures
}
