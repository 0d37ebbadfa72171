package usecase

import (
	"context"
	"strings"

	"flashsale/internal/core/domain"
	"flashsale/internal/core/port"
)

const maxDescriptionLen = 1000

// CampaignUseCase implements the flash sale business logic. It funnels
// every mutation through the same validation and invariant checks and
// is the only entry point external callers use.
type CampaignUseCase struct {
	repo    port.CampaignRepository
	catalog port.ProductCatalog
	clock   domain.Clock
}

// NewCampaignUseCase creates a usecase over the given repository,
// product catalog and clock.
func NewCampaignUseCase(repo port.CampaignRepository, catalog port.ProductCatalog, clock domain.Clock) *CampaignUseCase {
	return &CampaignUseCase{repo: repo, catalog: catalog, clock: clock}
}

// CreateCampaign validates the spec, derives the initial status from
// the clock and persists the campaign with an empty line-item set.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, spec port.CampaignSpec) (*domain.Campaign, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	c := domain.Campaign{
		Name:               strings.TrimSpace(spec.Name),
		Description:        spec.Description,
		StartTime:          spec.StartTime,
		EndTime:            spec.EndTime,
		DiscountPercentage: spec.DiscountPercentage,
		MaxDiscountAmount:  spec.MaxDiscountAmount,
	}
	c.Status = domain.Resolve(c, u.clock.Now())
	id, err := u.repo.CreateCampaign(ctx, c)
	if err != nil {
		return nil, err
	}
	return u.repo.GetCampaign(ctx, id)
}

// UpdateCampaign revalidates and persists the spec. The status is
// re-derived against the new time window, so an edit that moves the
// window can immediately flip it. A cancelled campaign stays cancelled.
func (u *CampaignUseCase) UpdateCampaign(ctx context.Context, id int64, spec port.CampaignSpec) (*domain.Campaign, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	existing, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	c := *existing
	c.Name = strings.TrimSpace(spec.Name)
	c.Description = spec.Description
	c.StartTime = spec.StartTime
	c.EndTime = spec.EndTime
	c.DiscountPercentage = spec.DiscountPercentage
	c.MaxDiscountAmount = spec.MaxDiscountAmount
	c.Status = domain.Resolve(c, u.clock.Now())
	if err = u.repo.UpdateCampaign(ctx, c); err != nil {
		return nil, err
	}
	return u.repo.GetCampaign(ctx, id)
}

// DeleteCampaign removes the campaign; the store cascades the deletion
// to its line items.
func (u *CampaignUseCase) DeleteCampaign(ctx context.Context, id int64) error {
	return u.repo.DeleteCampaign(ctx, id)
}

// GetCampaign returns the campaign with its items, derived remaining
// quantities and time-derived status.
func (u *CampaignUseCase) GetCampaign(ctx context.Context, id int64) (*port.CampaignView, error) {
	c, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := u.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	view := u.view(*c)
	view.Items = make([]port.ItemView, 0, len(items))
	for _, it := range items {
		view.Items = append(view.Items, port.ItemView{LineItem: it, Remaining: it.Remaining()})
	}
	return &view, nil
}

// ListCampaigns returns campaigns filtered by persisted status. The
// derived status rides along so display callers never need a write.
func (u *CampaignUseCase) ListCampaigns(ctx context.Context, status *domain.Status) ([]port.CampaignView, error) {
	if status != nil && !status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown status " + string(*status)}
	}
	campaigns, err := u.repo.ListCampaigns(ctx, port.CampaignFilter{Status: status})
	if err != nil {
		return nil, err
	}
	views := make([]port.CampaignView, 0, len(campaigns))
	for _, c := range campaigns {
		views = append(views, u.view(c))
	}
	return views, nil
}

// CancelCampaign moves the campaign into the absorbing CANCELLED state.
// Cancelling twice is a no-op.
func (u *CampaignUseCase) CancelCampaign(ctx context.Context, id int64) error {
	c, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return err
	}
	if c.Status == domain.StatusCancelled {
		return nil
	}
	return u.repo.CancelCampaign(ctx, id)
}

func (u *CampaignUseCase) view(c domain.Campaign) port.CampaignView {
	return port.CampaignView{
		Campaign:      c,
		DerivedStatus: domain.Resolve(c, u.clock.Now()),
	}
}

func validateSpec(spec port.CampaignSpec) error {
	if strings.TrimSpace(spec.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(spec.Description) > maxDescriptionLen {
		return &domain.ValidationError{Field: "description", Reason: "must be at most 1000 characters"}
	}
	if spec.StartTime.IsZero() || spec.EndTime.IsZero() {
		return &domain.ValidationError{Field: "startTime", Reason: "start and end time are required"}
	}
	if !spec.StartTime.Before(spec.EndTime) {
		return &domain.ValidationError{Field: "endTime", Reason: "must be after startTime"}
	}
	if spec.DiscountPercentage < 1 || spec.DiscountPercentage > 100 {
		return &domain.ValidationError{Field: "discountPercentage", Reason: "must be between 1 and 100"}
	}
	if spec.MaxDiscountAmount <= 0 {
		return &domain.ValidationError{Field: "maxDiscountAmount", Reason: "must be positive"}
	}
	return nil
}
