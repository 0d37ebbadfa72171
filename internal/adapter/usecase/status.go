package usecase

import (
	"context"

	"flashsale/internal/core/domain"
	"flashsale/internal/core/port"
)

// ResolveStatus returns the time-derived status of a campaign without
// touching the persisted value. Display paths use this; only an
// explicit sync writes.
func (u *CampaignUseCase) ResolveStatus(ctx context.Context, id int64) (domain.Status, error) {
	c, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return "", err
	}
	return domain.Resolve(*c, u.clock.Now()), nil
}

// SyncStatus reconciles the persisted status with the time-derived one.
// When the two already match it reports Changed=false and performs no
// write, so repeated syncs leave no spurious audit trail. The write is
// conditional on the previously read value; losing that race to a
// concurrent sync is also reported as Changed=false since the winner
// wrote the same derivation.
func (u *CampaignUseCase) SyncStatus(ctx context.Context, id int64) (*port.SyncResult, error) {
	c, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	derived := domain.Resolve(*c, u.clock.Now())
	if derived == c.Status {
		return &port.SyncResult{CampaignID: id, Previous: c.Status, Current: derived}, nil
	}
	wrote, err := u.repo.UpdateStatus(ctx, id, c.Status, derived)
	if err != nil {
		return nil, err
	}
	if !wrote {
		current, err := u.repo.GetCampaign(ctx, id)
		if err != nil {
			return nil, err
		}
		return &port.SyncResult{CampaignID: id, Previous: c.Status, Current: current.Status}, nil
	}
	return &port.SyncResult{CampaignID: id, Previous: c.Status, Current: derived, Changed: true}, nil
}

// SyncAll reconciles every campaign whose persisted status is still
// time-sensitive. ENDED and CANCELLED rows are skipped: ENDED only
// changes again through an explicit window edit, which re-derives on
// its own.
func (u *CampaignUseCase) SyncAll(ctx context.Context) ([]port.SyncResult, error) {
	campaigns, err := u.repo.ListCampaigns(ctx, port.CampaignFilter{})
	if err != nil {
		return nil, err
	}
	var results []port.SyncResult
	for _, c := range campaigns {
		if c.Status == domain.StatusEnded || c.Status == domain.StatusCancelled {
			continue
		}
		res, err := u.SyncStatus(ctx, c.ID)
		if err != nil {
			return results, err
		}
		results = append(results, *res)
	}
	return results, nil
}
