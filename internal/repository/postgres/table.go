package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/internal/repository"
)

// Table is a gorm-backed Store for one entity.
type Table[E any, K comparable, P repository.Entity[E, K]] struct {
	db *gorm.DB
}

// NewTable binds a Store to the entity's table.
func NewTable[E any, K comparable, P repository.Entity[E, K]](db *gorm.DB) *Table[E, K, P] {
	return &Table[E, K, P]{db: db}
}

func (t *Table[E, K, P]) Create(ctx context.Context, entity *E) error {
	rec := P(entity)
	rec.AssignKey(0)
	if err := t.db.WithContext(ctx).Create(entity).Error; err != nil {
		return translate("insert "+rec.TableName(), err)
	}
	return nil
}

func (t *Table[E, K, P]) Get(ctx context.Context, key K) (*E, error) {
	var row E
	if err := t.db.WithContext(ctx).Where(byKey(key)).Take(&row).Error; err != nil {
		return nil, translate("select "+P(&row).TableName(), err)
	}
	return &row, nil
}

func (t *Table[E, K, P]) List(ctx context.Context, page repository.Page) ([]E, error) {
	rows := make([]E, 0)
	if err := t.paged(t.db.WithContext(ctx), page).Find(&rows).Error; err != nil {
		var zero E
		return nil, translate("list "+P(&zero).TableName(), err)
	}
	return rows, nil
}

func (t *Table[E, K, P]) Find(ctx context.Context, field string, value any, page repository.Page) ([]E, error) {
	rows := make([]E, 0)
	query := t.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: field}, Value: value})
	if err := t.paged(query, page).Find(&rows).Error; err != nil {
		var zero E
		return nil, translate("filter "+P(&zero).TableName(), err)
	}
	return rows, nil
}

func (t *Table[E, K, P]) Update(ctx context.Context, key K, mutate func(*E) error) (*E, error) {
	var (
		row       E
		domainErr error
	)
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where(byKey(key)).Take(&row).Error; err != nil {
			return err
		}
		if err := mutate(&row); err != nil {
			domainErr = err
			return err
		}
		return tx.Save(&row).Error
	})
	if domainErr != nil {
		return nil, domainErr
	}
	if err != nil {
		return nil, translate("update "+P(&row).TableName(), err)
	}
	return &row, nil
}

func (t *Table[E, K, P]) Delete(ctx context.Context, key K) (*E, error) {
	var row E
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where(byKey(key)).Take(&row).Error; err != nil {
			return err
		}
		res := tx.Delete(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, translate("delete "+P(&row).TableName(), err)
	}
	return &row, nil
}

func (t *Table[E, K, P]) paged(query *gorm.DB, page repository.Page) *gorm.DB {
	page = page.Normalize()
	return query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}}).
		Order(clause.OrderByColumn{Column: clause.PrimaryColumn}).
		Offset(page.Skip).
		Limit(page.Limit)
}

func byKey(key any) clause.Expression {
	return clause.Eq{Column: clause.PrimaryColumn, Value: key}
}

var _ repository.Store[models.Centra, int64] = (*Table[models.Centra, int64, *models.Centra])(nil)
