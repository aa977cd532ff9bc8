package repository

import (
	"context"
	"fmt"

	"gamereviews/internal/http-api/models"
	"gamereviews/internal/pkg/pagination"

	"gorm.io/gorm"
)

// CompanyRepo serves the publishers and developers tables, which share one shape.
type CompanyRepo[T models.CompanyModel] struct {
	db    *gorm.DB
	table string
	fk    string // reviews column pointing at this table
	kind  string
}

func NewPublisherRepo(db *gorm.DB) *CompanyRepo[models.Publisher] {
	return &CompanyRepo[models.Publisher]{db: db, table: "publishers", fk: "publisher_id", kind: "publisher"}
}

func NewDeveloperRepo(db *gorm.DB) *CompanyRepo[models.Developer] {
	return &CompanyRepo[models.Developer]{db: db, table: "developers", fk: "developer_id", kind: "developer"}
}

// Kind is "publisher" or "developer".
func (r *CompanyRepo[T]) Kind() string {
	return r.kind
}

// ReviewColumn is the reviews column referencing this table.
func (r *CompanyRepo[T]) ReviewColumn() string {
	return r.fk
}

func (r *CompanyRepo[T]) withGamesCount(db *gorm.DB) *gorm.DB {
	return db.Select(fmt.Sprintf(
		"%[1]s.*, (SELECT COUNT(*) FROM reviews WHERE reviews.%[2]s = %[1]s.id) AS games_count",
		r.table, r.fk,
	))
}

func (r *CompanyRepo[T]) inUse() string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM reviews WHERE reviews.%s = %s.id)", r.fk, r.table)
}

// List returns one page of companies with their games_count.
func (r *CompanyRepo[T]) List(ctx context.Context, q pagination.Query) ([]T, pagination.Meta, error) {
	var list []T
	order := q.Sort.OrderClause(r.table+".name", r.table+".created_on")
	meta, err := pagination.Paginate(r.db.WithContext(ctx).Model(new(T)), q, &list, r.withGamesCount, func(db *gorm.DB) *gorm.DB {
		return db.Order(order).Order(r.table + ".id")
	})
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list %ss: %w", r.kind, err)
	}
	return list, meta, nil
}

func (r *CompanyRepo[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	var c T
	if err := r.withGamesCount(r.db.WithContext(ctx).Model(new(T))).
		Where(r.table+".slug = ?", slug).
		First(&c).Error; err != nil {
		return nil, fmt.Errorf("get %s by slug: %w", r.kind, err)
	}
	return &c, nil
}

// ListInUse returns every company referenced by at least one review, by name.
func (r *CompanyRepo[T]) ListInUse(ctx context.Context) ([]T, error) {
	var list []T
	if err := r.withGamesCount(r.db.WithContext(ctx).Model(new(T))).
		Where(r.inUse()).
		Order(r.table + ".name asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list %ss in use: %w", r.kind, err)
	}
	return list, nil
}

// DeleteByIDs removes the given companies; their reviews go with them.
func (r *CompanyRepo[T]) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(new(T))
	if res.Error != nil {
		return 0, fmt.Errorf("delete %ss: %w", r.kind, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteUnused removes every company with zero reviews.
func (r *CompanyRepo[T]) DeleteUnused(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("NOT " + r.inUse()).Delete(new(T))
	if res.Error != nil {
		return 0, fmt.Errorf("delete unused %ss: %w", r.kind, res.Error)
	}
	return res.RowsAffected, nil
}
