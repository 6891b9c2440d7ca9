package models

import "time"

type Notification struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Message   string    `bson:"message" json:"message"`
	Link      string    `bson:"link,omitempty" json:"link,omitempty"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
