package planner

import (
	"encoding/json"

	"egym/plan-service/internal/domain"
)

// SchemaVersion identifies the plan contract. Bump it whenever the structure
// below changes so stored plans can be told apart.
const SchemaVersion = 1

// ModalityValues is the closed vocabulary for exercise modality.
var ModalityValues = []string{"strength", "hypertrophy", "endurance", "mobility", "stability", "conditioning"}

// PlanSchema returns the canonical draft-07 schema for a weekly plan. It is
// the single source of truth for the output contract: the prompt builder
// renders it into instruction text and the validator enforces it, so the two
// can never drift.
//
// A fresh map is returned on every call; callers may hand it to loaders that
// mutate their input.
func PlanSchema() map[string]interface{} {
	drillsSchema := map[string]interface{}{
		"type": "array",
		"items": map[string]interface{}{
			"type":     "object",
			"required": []string{"name", "details"},
			"properties": map[string]interface{}{
				"name":    map[string]interface{}{"type": "string", "minLength": 1},
				"details": map[string]interface{}{"type": "string", "minLength": 1},
			},
			"additionalProperties": false,
		},
	}

	blockSchema := func() map[string]interface{} {
		return map[string]interface{}{
			"type":     "object",
			"required": []string{"minutes", "drills"},
			"properties": map[string]interface{}{
				"minutes": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 60},
				"drills":  drillsSchema,
			},
			"additionalProperties": false,
		}
	}

	exerciseSchema := map[string]interface{}{
		"type":     "object",
		"required": []string{"name", "modality", "equipment", "muscle_groups", "sets", "reps_or_time", "intensity", "tempo", "form_tips"},
		"properties": map[string]interface{}{
			"name":     map[string]interface{}{"type": "string", "minLength": 1},
			"modality": map[string]interface{}{"type": "string", "enum": ModalityValues},
			"equipment": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"muscle_groups": map[string]interface{}{
				"type":     "array",
				"items":    map[string]interface{}{"type": "string"},
				"minItems": 1,
			},
			"sets":         map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 10},
			"reps_or_time": map[string]interface{}{"type": "string", "minLength": 1},
			"intensity":    map[string]interface{}{"type": "string", "minLength": 1},
			"tempo":        map[string]interface{}{"type": "string", "minLength": 1},
			"rest_seconds": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 300},
			"substitutions": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"form_tips": map[string]interface{}{
				"type":     "array",
				"items":    map[string]interface{}{"type": "string"},
				"minItems": 1,
			},
		},
		"additionalProperties": false,
	}

	daySchema := map[string]interface{}{
		"type":     "object",
		"required": []string{"day", "day_type", "target_focus", "estimated_minutes"},
		"properties": map[string]interface{}{
			"day":               map[string]interface{}{"type": "string", "enum": domain.WeekdayOrder},
			"day_type":          map[string]interface{}{"type": "string", "enum": []string{domain.DayTypeWorkout, domain.DayTypeRest}},
			"target_focus":      map[string]interface{}{"type": "string", "minLength": 1},
			"estimated_minutes": map[string]interface{}{"type": "integer", "minimum": domain.MinTimePerDayMinutes, "maximum": domain.MaxTimePerDayMinutes},
			"warmup":            blockSchema(),
			"exercises": map[string]interface{}{
				"type":  "array",
				"items": exerciseSchema,
			},
			"cooldown": blockSchema(),
			"notes":    map[string]interface{}{"type": "string"},
		},
		"additionalProperties": false,
	}

	profileSchema := map[string]interface{}{
		"type":     "object",
		"required": []string{"goal", "skillLevel", "injuries", "mobilityLevel", "equipment", "timePerDayMinutes"},
		"properties": map[string]interface{}{
			"goal":       map[string]interface{}{"type": "string", "enum": domain.GoalValues},
			"skillLevel": map[string]interface{}{"type": "string", "enum": domain.SkillLevelValues},
			"injuries": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string", "enum": domain.InjuryValues},
				"uniqueItems": true,
			},
			"mobilityLevel": map[string]interface{}{"type": "string", "enum": domain.MobilityLevelValues},
			"equipment": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string", "enum": domain.EquipmentValues},
				"uniqueItems": true,
			},
			"timePerDayMinutes": map[string]interface{}{"type": "integer", "minimum": domain.MinTimePerDayMinutes, "maximum": domain.MaxTimePerDayMinutes},
		},
		"additionalProperties": false,
	}

	return map[string]interface{}{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"title":    "WeeklyWorkoutPlan",
		"type":     "object",
		"required": []string{"caution", "profile", "week"},
		"properties": map[string]interface{}{
			"caution": map[string]interface{}{"type": "string", "minLength": 10},
			"profile": profileSchema,
			"week": map[string]interface{}{
				"type":     "array",
				"minItems": 7,
				"maxItems": 7,
				"items":    daySchema,
			},
		},
		"additionalProperties": false,
	}
}

// SchemaJSON renders the canonical schema as indented JSON, ready to embed
// in the developer prompt.
func SchemaJSON() string {
	b, err := json.MarshalIndent(PlanSchema(), "", "  ")
	if err != nil {
		// The schema is a static literal of marshalable types.
		panic("planner: schema marshal failed: " + err.Error())
	}
	return string(b)
}
