package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Weekday tokens in plan order. A valid week covers each exactly once, in
// this order.
var WeekdayOrder = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

const (
	DayTypeWorkout = "workout"
	DayTypeRest    = "rest"
)

// Plan record status. Plans are append-only; "active" reflects creation-time
// intent, the authoritative pointer lives on the user record.
const PlanStatusActive = "active"

// PlanStartWeekday is written alongside the active-plan pointer so clients
// know which day a week starts on.
const PlanStartWeekday = "Mon"

// WorkoutPlan is a persisted seven-day plan scoped to a user. Immutable
// after creation except for the display name.
type WorkoutPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"` // e.g. "Weekly Strength Plan"
	Version   int                `bson:"version" json:"version"`
	Status    string             `bson:"status" json:"status"`
	Caution   string             `bson:"caution" json:"caution"`
	Profile   UserProfile        `bson:"profile" json:"profile"`
	Week      []DayPlan          `bson:"week" json:"week"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GeneratedPlan is validated model output before persistence metadata is
// attached.
type GeneratedPlan struct {
	Caution string      `json:"caution"`
	Profile UserProfile `json:"profile"`
	Week    []DayPlan   `json:"week"`
}

// DayPlan is one weekday's prescription. Rest days carry only a note;
// workout days carry the warmup/exercises/cooldown blocks.
type DayPlan struct {
	Day              string     `bson:"day" json:"day"`
	DayType          string     `bson:"dayType" json:"day_type"`
	TargetFocus      string     `bson:"targetFocus" json:"target_focus"`
	EstimatedMinutes int        `bson:"estimatedMinutes" json:"estimated_minutes"`
	Warmup           *Block     `bson:"warmup,omitempty" json:"warmup,omitempty"`
	Exercises        []Exercise `bson:"exercises,omitempty" json:"exercises,omitempty"`
	Cooldown         *Block     `bson:"cooldown,omitempty" json:"cooldown,omitempty"`
	Notes            string     `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Block is a warmup or cooldown segment.
type Block struct {
	Minutes int     `bson:"minutes" json:"minutes"`
	Drills  []Drill `bson:"drills" json:"drills"`
}

type Drill struct {
	Name    string `bson:"name" json:"name"`
	Details string `bson:"details" json:"details"`
}

type Exercise struct {
	Name          string   `bson:"name" json:"name"`
	Modality      string   `bson:"modality" json:"modality"`
	Equipment     []string `bson:"equipment" json:"equipment"`
	MuscleGroups  []string `bson:"muscleGroups" json:"muscle_groups"`
	Sets          int      `bson:"sets" json:"sets"`
	RepsOrTime    string   `bson:"repsOrTime" json:"reps_or_time"`
	Intensity     string   `bson:"intensity" json:"intensity"`
	Tempo         string   `bson:"tempo" json:"tempo"`
	RestSeconds   *int     `bson:"restSeconds,omitempty" json:"rest_seconds,omitempty"`
	Substitutions []string `bson:"substitutions,omitempty" json:"substitutions,omitempty"`
	FormTips      []string `bson:"formTips" json:"form_tips"`
}
