package services

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Owned is implemented by records that belong to a single user.
type Owned interface {
	SetOwnerID(id uint)
}

// QueryOption narrows or decorates a query built by ScopedStore.
type QueryOption func(*gorm.DB) *gorm.DB

// ScopedStore is a repository for T that only ever sees rows whose owner
// column equals the requesting user. Rows of other users behave exactly like
// rows that do not exist.
type ScopedStore[T any, PT interface {
	*T
	Owned
}] struct {
	db          *gorm.DB
	ownerColumn string
	defaults    []QueryOption
}

func NewScopedStore[T any, PT interface {
	*T
	Owned
}](db *gorm.DB, ownerColumn string, defaults ...QueryOption) *ScopedStore[T, PT] {
	return &ScopedStore[T, PT]{db: db, ownerColumn: ownerColumn, defaults: defaults}
}

// WithTx returns a copy of the store bound to tx.
func (s *ScopedStore[T, PT]) WithTx(tx *gorm.DB) *ScopedStore[T, PT] {
	cp := *s
	cp.db = tx
	return &cp
}

// Scope returns a query over T restricted to ownerID.
func (s *ScopedStore[T, PT]) Scope(ctx context.Context, ownerID uint) *gorm.DB {
	q := s.db.WithContext(ctx).Model(PT(new(T))).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: s.ownerColumn}, Value: ownerID})
	for _, opt := range s.defaults {
		q = opt(q)
	}
	return q
}

func (s *ScopedStore[T, PT]) List(ctx context.Context, ownerID uint, opts ...QueryOption) ([]T, error) {
	q := s.Scope(ctx, ownerID)
	for _, opt := range opts {
		q = opt(q)
	}
	out := []T{}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ScopedStore[T, PT]) Get(ctx context.Context, ownerID, id uint) (*T, error) {
	var rec T
	err := s.Scope(ctx, ownerID).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Value: id}).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create stamps ownerID on rec before inserting it. Associations are not
// written; callers insert children explicitly.
func (s *ScopedStore[T, PT]) Create(ctx context.Context, ownerID uint, rec PT) error {
	rec.SetOwnerID(ownerID)
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
}

// Update writes every column of rec except its key, owner and creation time.
// rec must have been loaded through Get so ownership is already established.
func (s *ScopedStore[T, PT]) Update(ctx context.Context, ownerID uint, rec PT) error {
	res := s.db.WithContext(ctx).Model(rec).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: s.ownerColumn}, Value: ownerID}).
		Select("*").
		Omit("id", s.ownerColumn, "created_at", clause.Associations).
		Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ScopedStore[T, PT]) Delete(ctx context.Context, ownerID, id uint) error {
	res := s.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: s.ownerColumn}, Value: ownerID}).
		Delete(PT(new(T)), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
