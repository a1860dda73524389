package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the system.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Raw questionnaire answers. Deliberately loosely typed: the profile
	// normalizer owns coercion, the store never rejects partial input.
	Preferences map[string]interface{} `bson:"preferences,omitempty" json:"preferences,omitempty"`

	// Pointer to the plan currently shown to the user. Written with
	// last-write-wins semantics; the generation core never caches it.
	ActivePlanID     *primitive.ObjectID `bson:"activePlanId,omitempty" json:"activePlanId,omitempty"`
	PlanStartWeekday string              `bson:"planStartWeekday,omitempty" json:"planStartWeekday,omitempty"`
}
