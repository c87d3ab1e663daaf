package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-graphql/internal/model"
)

// SubscriptionRepository manages the (subscriber_id, author_id) join pairs and
// resolves them into users in both directions.
type SubscriptionRepository interface {
	CreateLink(ctx context.Context, subscriberID, authorID string) error
	DeleteLink(ctx context.Context, subscriberID, authorID string) error
	// Authors lists the users subscriberID subscribes to.
	Authors(ctx context.Context, subscriberID string) ([]*model.User, error)
	// Subscribers lists the users subscribed to authorID.
	Subscribers(ctx context.Context, authorID string) ([]*model.User, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// CreateLink requires both endpoints to exist and the pair to be new. Unlike
// an idempotent follow, a duplicate subscription is reported to the caller.
func (r *subscriptionRepository) CreateLink(ctx context.Context, subscriberID, authorID string) error {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id IN ?", []string{subscriberID, authorID}).
		Distinct("id").Count(&cnt).Error; err != nil {
		return err
	}
	want := int64(2)
	if subscriberID == authorID {
		want = 1
	}
	if cnt != want {
		return fmt.Errorf("user: %w", ErrNotFound)
	}
	if err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return fmt.Errorf("subscription: %w", ErrDuplicate)
	}
	s := &model.Subscription{ID: uuid.New().String(), SubscriberID: subscriberID, AuthorID: authorID}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *subscriptionRepository) DeleteLink(ctx context.Context, subscriberID, authorID string) error {
	res := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Delete(&model.Subscription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("subscription: %w", ErrNotFound)
	}
	return nil
}

func (r *subscriptionRepository) Authors(ctx context.Context, subscriberID string) ([]*model.User, error) {
	res := make([]*model.User, 0)
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Find(&res).Error
	return res, err
}

func (r *subscriptionRepository) Subscribers(ctx context.Context, authorID string) ([]*model.User, error) {
	res := make([]*model.User, 0)
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscriber_id = users.id").
		Where("subscriptions.author_id = ?", authorID).
		Find(&res).Error
	return res, err
}
