package repository

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/service-desk/internal/changefeed"
	"github.com/BruksfildServices01/service-desk/internal/collection"
)

// GormStore implementa collection.Store para uma tabela e publica um
// evento no feed depois de cada escrita confirmada.
type GormStore[T collection.Record] struct {
	db     *gorm.DB
	topic  string
	feed   changefeed.Feed
	scopes []func(*gorm.DB) *gorm.DB
}

func NewGormStore[T collection.Record](
	db *gorm.DB,
	topic string,
	feed changefeed.Feed,
	scopes ...func(*gorm.DB) *gorm.DB,
) *GormStore[T] {
	return &GormStore[T]{db: db, topic: topic, feed: feed, scopes: scopes}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (s *GormStore[T]) FetchAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := s.db.WithContext(ctx).
		Scopes(s.scopes...).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (s *GormStore[T]) Insert(ctx context.Context, rec *T) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return err
	}
	s.publish(ctx, changefeed.ActionInsert, (*rec).GetID())
	return nil
}

// Update grava todas as colunas do registro, sem tocar nas associações.
func (s *GormStore[T]) Update(ctx context.Context, rec *T) error {
	res := s.db.WithContext(ctx).
		Model(rec).
		Select("*").
		Omit(clause.Associations).
		Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return collection.ErrMissing
	}
	s.publish(ctx, changefeed.ActionUpdate, (*rec).GetID())
	return nil
}

func (s *GormStore[T]) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return collection.ErrMissing
	}
	s.publish(ctx, changefeed.ActionDelete, id)
	return nil
}

func (s *GormStore[T]) publish(ctx context.Context, action changefeed.Action, id uint) {
	if s.feed == nil {
		return
	}
	ev := changefeed.Event{Topic: s.topic, Action: action, ID: id, At: time.Now()}
	if err := s.feed.Publish(ctx, ev); err != nil {
		log.Printf("[changefeed] publish %s %s %d: %v", s.topic, action, id, err)
	}
}
