package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/service-desk/internal/changefeed"
	"github.com/BruksfildServices01/service-desk/internal/collection"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

// ServiceOrderStore grava a OS e seus itens na mesma transação.
type ServiceOrderStore struct {
	*GormStore[models.ServiceOrder]
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("service_order_items.id ASC")
	})
}

func NewServiceOrderStore(db *gorm.DB, feed changefeed.Feed) *ServiceOrderStore {
	return &ServiceOrderStore{
		GormStore: NewGormStore[models.ServiceOrder](db, changefeed.TopicServiceOrders, feed, withItems),
	}
}

func (s *ServiceOrderStore) Update(ctx context.Context, o *models.ServiceOrder) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(o).
			Select("*").
			Omit(clause.Associations).
			Updates(o)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return collection.ErrMissing
		}
		return syncItems(tx, o)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, changefeed.ActionUpdate, o.ID)
	return nil
}

// syncItems remove os itens que saíram da OS e grava os demais; itens novos
// recebem id aqui.
func syncItems(tx *gorm.DB, o *models.ServiceOrder) error {
	keep := make([]uint, 0, len(o.Items))
	for _, it := range o.Items {
		if it.ID != 0 {
			keep = append(keep, it.ID)
		}
	}

	stale := tx.Where("service_order_id = ?", o.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&models.ServiceOrderItem{}).Error; err != nil {
		return err
	}

	o.Items = append([]models.ServiceOrderItem(nil), o.Items...)
	for i := range o.Items {
		o.Items[i].ServiceOrderID = o.ID
		if err := tx.Save(&o.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *ServiceOrderStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_order_id = ?", id).
			Delete(&models.ServiceOrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.ServiceOrder{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return collection.ErrMissing
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, changefeed.ActionDelete, id)
	return nil
}
