package database

import (
	"github.com/foodgram/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db}
}

// Exists reports whether subscriber already follows subscribedTo.
func (r *SubscriptionRepo) Exists(subscriberID, subscribedToID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("subscriber_id = ? AND subscribed_to_id = ?", subscriberID, subscribedToID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a subscription row, relying on the unique index on
// (subscriber_id, subscribed_to_id) under concurrent duplicate adds.
func (r *SubscriptionRepo) Add(subscription *models.Subscription) error {
	if subscription.ID == uuid.Nil {
		subscription.ID = uuid.New()
	}
	return r.db.Create(subscription).Error
}

// Remove deletes the membership row and reports how many rows went away.
func (r *SubscriptionRepo) Remove(subscriberID, subscribedToID uuid.UUID) (int64, error) {
	result := r.db.Where("subscriber_id = ? AND subscribed_to_id = ?", subscriberID, subscribedToID).
		Delete(&models.Subscription{})
	return result.RowsAffected, result.Error
}

// FindAuthorsPage returns one page of the users the subscriber follows,
// ordered by username, plus the total count.
func (r *SubscriptionRepo) FindAuthorsPage(subscriberID uuid.UUID, limit, offset int) ([]*models.User, int64, error) {
	base := r.db.Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscribed_to_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []*models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscribed_to_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("users.username").
		Limit(limit).
		Offset(offset).
		Find(&authors).Error
	return authors, total, err
}

// SubscribedSet returns, for one round trip, which of the given users the
// subscriber follows. Used to annotate user listings without a query per row.
func (r *SubscriptionRepo) SubscribedSet(subscriberID uuid.UUID, targetIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := make(map[uuid.UUID]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return set, nil
	}

	var ids []uuid.UUID
	err := r.db.Model(&models.Subscription{}).
		Where("subscriber_id = ? AND subscribed_to_id IN ?", subscriberID, targetIDs).
		Pluck("subscribed_to_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
