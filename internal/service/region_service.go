package service

import (
	"context"
	"strings"

	"github.com/pressroom/article-service/internal/domain"
	"github.com/pressroom/article-service/internal/pagination"
	"github.com/pressroom/article-service/internal/repository"
)

// RegionInput carries the writable region fields for create and update.
type RegionInput struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// RegionService implements region business use cases.
type RegionService struct {
	regions repository.RegionRepository
}

// NewRegionService creates a new region service.
func NewRegionService(regions repository.RegionRepository) *RegionService {
	return &RegionService{regions: regions}
}

// List returns one page of regions and the total count. A non-empty search
// term filters by name.
func (s *RegionService) List(ctx context.Context, p pagination.Params) ([]RegionDTO, int, error) {
	var (
		regions []domain.Region
		total   int
		err     error
	)

	if p.Search != "" {
		regions, total, err = s.regions.SearchPaginated(ctx, p.Search, p.Offset(), p.Limit)
	} else {
		regions, total, err = s.regions.ListPaginated(ctx, p.Offset(), p.Limit)
	}
	if err != nil {
		return nil, 0, err
	}

	return newRegionDTOs(regions), total, nil
}

// Get returns the region with the given id.
func (s *RegionService) Get(ctx context.Context, id int64) (*RegionDTO, error) {
	region, err := s.regions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, domain.NewNotFoundError("region", id)
	}

	dto := newRegionDTO(region)
	return &dto, nil
}

// Create validates the input and inserts a new region. The code is normalized
// to upper case and must be unique across regions.
func (s *RegionService) Create(ctx context.Context, in RegionInput) (*RegionDTO, error) {
	code := domain.NormalizeRegionCode(in.Code)
	name := strings.TrimSpace(in.Name)

	if errs := validateRegionFields(code, name); len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}

	existing, err := s.regions.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflictError(
			"region code already exists",
			map[string]any{"code": code},
		)
	}

	region, err := s.regions.Create(ctx, code, name)
	if err != nil {
		return nil, err
	}

	dto := newRegionDTO(region)
	return &dto, nil
}

// Update validates the input and modifies an existing region. The uniqueness
// check is skipped when the code is unchanged, so renaming a region keeps
// working even though its own code is already taken.
func (s *RegionService) Update(ctx context.Context, id int64, in RegionInput) (*RegionDTO, error) {
	current, err := s.regions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.NewNotFoundError("region", id)
	}

	code := domain.NormalizeRegionCode(in.Code)
	name := strings.TrimSpace(in.Name)

	if errs := validateRegionFields(code, name); len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}

	if code != current.Code {
		existing, err := s.regions.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.NewConflictError(
				"region code already exists",
				map[string]any{"code": code},
			)
		}
	}

	region, err := s.regions.Update(ctx, id, code, name)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, domain.NewNotFoundError("region", id)
	}

	dto := newRegionDTO(region)
	return &dto, nil
}

// Delete removes a region. Articles tagged with the region simply lose the
// tag; the join rows go away with the region.
func (s *RegionService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.regions.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFoundError("region", id)
	}
	return nil
}

// validateRegionFields collects every field violation for the region input.
func validateRegionFields(code, name string) []string {
	var errs []string
	errs = append(errs, domain.ValidateRegionCode(code)...)
	errs = append(errs, domain.ValidateText(name, "name", domain.RegionNameMin, domain.RegionNameMax)...)
	return errs
}
