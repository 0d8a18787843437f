package models

import "github.com/google/uuid"

// Favorite marks a recipe as favorited by a user. The (user, recipe) pair is
// unique at the store level; the application-level existence check alone is
// not race-free.
type Favorite struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID   uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorite_unique"`
	RecipeID uuid.UUID `json:"recipe_id" db:"recipe_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorite_unique"`

	User   User   `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
}

// CartItem puts a recipe in a user's shopping cart. Same uniqueness rule as
// Favorite.
type CartItem struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID   uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_unique"`
	RecipeID uuid.UUID `json:"recipe_id" db:"recipe_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_unique"`

	User   User   `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
}

// Subscription makes one user follow another. Self-subscription is rejected
// at the handler layer; the pair is unique at the store level.
type Subscription struct {
	ID             uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	SubscriberID   uuid.UUID `json:"subscriber_id" db:"subscriber_id" gorm:"type:uuid;not null;uniqueIndex:idx_subscription_unique"`
	SubscribedToID uuid.UUID `json:"subscribed_to_id" db:"subscribed_to_id" gorm:"type:uuid;not null;uniqueIndex:idx_subscription_unique"`

	Subscriber   User `json:"-" gorm:"foreignKey:SubscriberID;references:ID;constraint:OnDelete:CASCADE"`
	SubscribedTo User `json:"-" gorm:"foreignKey:SubscribedToID;references:ID;constraint:OnDelete:CASCADE"`
}
