package queries

import (
	"context"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

var (
	ErrInvalidPage    = errs.Define("page must be at least 1", errs.ErrValidation)
	ErrInvalidPerPage = errs.Define("per_page must be between 1 and 100", errs.ErrValidation)
)

type ListResourcesParams struct {
	Type         resource.Type
	OwnerID      *uuid.UUID
	MinAvailable *int
	EVCharging   *bool
	Page         int
	PerPage      int
}

type CatalogQueries interface {
	Get(ctx context.Context, key resource.Key) (*ResourceView, error)
	GetDetail(ctx context.Context, key resource.Key) (*ResourceDetailView, error)
	Availability(ctx context.Context, key resource.Key) (*AvailabilityView, error)
	SlotState(ctx context.Context, key slot.Key) (*SlotStateView, error)
	List(ctx context.Context, params ListResourcesParams) (*ResourcePage, error)
}

type catalogQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewCatalogQueries(uow shared.UnitOfWork) CatalogQueries {
	return &catalogQueriesImpl{uow: uow}
}

func (q *catalogQueriesImpl) Get(ctx context.Context, key resource.Key) (*ResourceView, error) {
	var view *ResourceView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().Get(ctx, key)
		if err != nil {
			return shared.TranslateNotFound(err, shared.ErrResourceNotFound)
		}
		view = NewResourceView(res)
		return nil
	})
	return view, err
}

// GetDetail derives the availability summary and grid from live slot state
// rather than the stored count.
func (q *catalogQueriesImpl) GetDetail(ctx context.Context, key resource.Key) (*ResourceDetailView, error) {
	var view *ResourceDetailView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, grid, err := loadGrid(ctx, tx, key)
		if err != nil {
			return err
		}
		cells, summary := newGridView(grid)
		view = &ResourceDetailView{
			ResourceView: *NewResourceView(res),
			Availability: summary,
			Slots:        cells,
		}
		return nil
	})
	return view, err
}

func (q *catalogQueriesImpl) Availability(ctx context.Context, key resource.Key) (*AvailabilityView, error) {
	var view *AvailabilityView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, grid, err := loadGrid(ctx, tx, key)
		if err != nil {
			return err
		}
		_, summary := newGridView(grid)
		view = &summary
		return nil
	})
	return view, err
}

func (q *catalogQueriesImpl) SlotState(ctx context.Context, key slot.Key) (*SlotStateView, error) {
	var view *SlotStateView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().Get(ctx, key.Resource)
		if err != nil {
			return shared.TranslateNotFound(err, shared.ErrResourceNotFound)
		}
		if !res.Geometry().Contains(key.Index) {
			return errs.Wrapf(shared.ErrSlotNotFound, "index %d not in [0,%d)", key.Index, res.Geometry().Total())
		}
		state, err := tx.Slots().State(ctx, key)
		if err != nil {
			return shared.TranslateNotFound(err, shared.ErrSlotNotFound)
		}
		row, col := res.Geometry().Position(key.Index)
		view = &SlotStateView{
			ResourceType: key.Resource.Type,
			ResourceID:   key.Resource.ID,
			Index:        key.Index,
			Row:          row,
			Col:          col,
			State:        state,
		}
		return nil
	})
	return view, err
}

func (q *catalogQueriesImpl) List(ctx context.Context, params ListResourcesParams) (*ResourcePage, error) {
	if !params.Type.IsValid() {
		return nil, resource.ErrInvalidType
	}
	if params.Page == 0 {
		params.Page = 1
	}
	if params.PerPage == 0 {
		params.PerPage = DefaultPerPage
	}
	if params.Page < 1 {
		return nil, ErrInvalidPage
	}
	if params.PerPage < 1 || params.PerPage > MaxPerPage {
		return nil, ErrInvalidPerPage
	}

	page := &ResourcePage{Page: params.Page, PerPage: params.PerPage, Items: []*ResourceView{}}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		items, total, err := tx.Resources().List(ctx, shared.ResourceFilter{
			Type:         params.Type,
			OwnerID:      params.OwnerID,
			MinAvailable: params.MinAvailable,
			EVCharging:   params.EVCharging,
			Limit:        params.PerPage,
			Offset:       (params.Page - 1) * params.PerPage,
		})
		if err != nil {
			return err
		}
		for _, res := range items {
			page.Items = append(page.Items, NewResourceView(res))
		}
		page.Count = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func loadGrid(ctx context.Context, tx shared.Tx, key resource.Key) (*resource.Resource, slot.Grid, error) {
	res, err := tx.Resources().Get(ctx, key)
	if err != nil {
		return nil, slot.Grid{}, shared.TranslateNotFound(err, shared.ErrResourceNotFound)
	}
	occupied, err := tx.Slots().Occupied(ctx, key)
	if err != nil {
		return nil, slot.Grid{}, err
	}
	return res, slot.Project(res.Geometry(), occupied), nil
}
