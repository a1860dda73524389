package domain

// UserProfile is the normalized training-preference record that drives plan
// generation. Every field has a default, so a profile built by the
// normalizer is always complete regardless of what the user record holds.
type UserProfile struct {
	Goal              string   `bson:"goal" json:"goal"`
	SkillLevel        string   `bson:"skillLevel" json:"skillLevel"`
	Injuries          []string `bson:"injuries" json:"injuries"`
	MobilityLevel     string   `bson:"mobilityLevel" json:"mobilityLevel"`
	Equipment         []string `bson:"equipment" json:"equipment"`
	TimePerDayMinutes int      `bson:"timePerDayMinutes" json:"timePerDayMinutes"`
}

// Closed vocabularies for profile fields. These are the same lists the plan
// schema enforces; the normalizer rejects values outside them.
var (
	GoalValues          = []string{"strength", "endurance", "mobility", "weight", "tone"}
	SkillLevelValues    = []string{"beginner", "intermediate", "advanced"}
	InjuryValues        = []string{"none", "knee", "shoulder", "back", "wrist", "hip"}
	MobilityLevelValues = []string{"seated-only", "low-impact", "full-mobility"}
	EquipmentValues     = []string{"none", "chair", "dumbbells", "weight-rack", "resistance-band", "yoga-mat"}
)

// Bounds for the daily time budget.
const (
	MinTimePerDayMinutes = 5
	MaxTimePerDayMinutes = 180
)

// Defaults applied by the normalizer when a field is missing or unusable.
const (
	DefaultGoal              = "strength"
	DefaultSkillLevel        = "beginner"
	DefaultMobilityLevel     = "full-mobility"
	DefaultTimePerDayMinutes = 30
)
