package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-desk/internal/models"
)

type BusinessGormRepository struct {
	db *gorm.DB
}

func NewBusinessGormRepository(db *gorm.DB) *BusinessGormRepository {
	return &BusinessGormRepository{db: db}
}

// GetBusiness devolve o cadastro da empresa; a instalação tem um só.
func (r *BusinessGormRepository) GetBusiness(ctx context.Context) (*models.Business, error) {
	var b models.Business
	err := r.db.WithContext(ctx).Order("id ASC").First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusinessGormRepository) SaveBusiness(ctx context.Context, b *models.Business) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *BusinessGormRepository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

func (r *BusinessGormRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *BusinessGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateOwner cria o dono e o cadastro da empresa juntos.
func (r *BusinessGormRepository) CreateOwner(ctx context.Context, u *models.User, b *models.Business) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		return tx.Create(u).Error
	})
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

type AuditLogFilter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time

	Limit  int
	Offset int
}

// ListAuditLogs devolve a página pedida e o total sem paginação.
func (r *BusinessGormRepository) ListAuditLogs(ctx context.Context, f AuditLogFilter) ([]models.AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var out []models.AuditLog
	if err := q.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
