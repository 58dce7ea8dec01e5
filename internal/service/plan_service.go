// internal/service/plan_service.go
package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/planning"
	"github.com/andresuchdata/psi-planner/internal/repository"
	"github.com/rs/zerolog/log"
)

// PlanService persists monthly PSI plan rows. Plans are append-only per
// month: saving again creates a higher version instead of overwriting, so
// the planning history stays auditable.
type PlanService struct {
	planRepo   repository.MonthlyPlanRepository
	psiService *PSIService
}

func NewPlanService(planRepo repository.MonthlyPlanRepository, psiService *PSIService) *PlanService {
	return &PlanService{planRepo: planRepo, psiService: psiService}
}

func (s *PlanService) List(ctx context.Context, filter domain.PlanFilter) ([]domain.MonthlyPlan, error) {
	return s.planRepo.List(ctx, filter)
}

func (s *PlanService) GetByID(ctx context.Context, id int64) (*domain.MonthlyPlan, error) {
	return s.planRepo.GetByID(ctx, id)
}

// Create stores a manually authored plan row. A blank version gets the next
// one for the month.
func (s *PlanService) Create(ctx context.Context, plan *domain.MonthlyPlan) error {
	plan.PlanMonth = planning.MonthStart(plan.PlanMonth)

	if plan.Version == "" {
		version, err := s.nextVersion(ctx, plan.ProductID, plan.PlanMonth)
		if err != nil {
			return err
		}
		plan.Version = version
	}

	return s.planRepo.Create(ctx, plan)
}

func (s *PlanService) Update(ctx context.Context, plan *domain.MonthlyPlan) error {
	return s.planRepo.Update(ctx, plan)
}

func (s *PlanService) Delete(ctx context.Context, id int64) error {
	return s.planRepo.Delete(ctx, id)
}

// GeneratePlan computes the PSI row for a product and month and persists it
// as the month's next plan version.
func (s *PlanService) GeneratePlan(ctx context.Context, productID int64, month time.Time) (*domain.MonthlyPlan, error) {
	psi, err := s.psiService.CalculateMonthlyPSI(ctx, productID, month)
	if err != nil {
		return nil, err
	}

	planMonth := planning.MonthStart(month)
	version, err := s.nextVersion(ctx, productID, planMonth)
	if err != nil {
		return nil, err
	}

	plan := &domain.MonthlyPlan{
		ProductID:       productID,
		PlanMonth:       planMonth,
		Week1Purchase:   psi.Week1Purchase,
		Week2Purchase:   psi.Week2Purchase,
		Week3Purchase:   psi.Week3Purchase,
		Week4Purchase:   psi.Week4Purchase,
		OpeningBalance:  psi.OpeningBalance,
		SalesForecast:   psi.SalesForecast,
		EndingInventory: psi.EndingInventory,
		DOSDays:         psi.DOSDays,
		Version:         version,
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	log.Info().
		Int64("product_id", productID).
		Str("month", planMonth.Format("2006-01")).
		Str("version", version).
		Msg("monthly plan generated")

	return plan, nil
}

// nextVersion returns the month's next plan version. Versions are
// zero-padded so lexical order matches numeric order.
func (s *PlanService) nextVersion(ctx context.Context, productID int64, month time.Time) (string, error) {
	latest, err := s.planRepo.LatestForMonth(ctx, productID, month)
	if err != nil {
		return "", err
	}
	if latest == nil {
		return "v001", nil
	}

	if len(latest.Version) < 2 || latest.Version[0] != 'v' {
		return "", fmt.Errorf("unparseable plan version %q", latest.Version)
	}
	n, err := strconv.Atoi(latest.Version[1:])
	if err != nil {
		return "", fmt.Errorf("unparseable plan version %q: %w", latest.Version, err)
	}
	return fmt.Sprintf("v%03d", n+1), nil
}
