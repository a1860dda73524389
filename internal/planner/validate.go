package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"egym/plan-service/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

// Muscle groups loaded by each injury. If a profile declares an injury and
// an exercise touches one of these groups, the exercise must offer
// substitutions. The matching is substring-based and lowercase.
var injuryMuscleGroups = map[string][]string{
	"knee":     {"quad", "hamstring", "glute", "calf", "calves", "leg"},
	"shoulder": {"shoulder", "delt", "rotator", "trap", "chest"},
	"back":     {"back", "lat", "erector", "spine", "lumbar"},
	"wrist":    {"wrist", "forearm", "grip"},
	"hip":      {"hip", "glute", "adductor", "abductor"},
}

// ParsePlan sanitizes, parses and validates raw model output against the
// plan contract, using profile as the effective request context for
// cross-field checks. On success it returns the typed plan; it never
// repairs. The function is pure, so validating the same input twice yields
// the same decision.
func ParsePlan(raw string, profile domain.UserProfile) (*domain.GeneratedPlan, error) {
	cleaned := StripCodeFences(raw)

	var probe interface{}
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlanFormat, err)
	}

	schemaLoader := gojsonschema.NewGoLoader(PlanSchema())
	docLoader := gojsonschema.NewStringLoader(cleaned)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrSchemaViolation, formatViolations(result))
	}

	var plan domain.GeneratedPlan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlanFormat, err)
	}

	if err := checkWeekInvariants(&plan, profile); err != nil {
		return nil, err
	}
	return &plan, nil
}

func formatViolations(result *gojsonschema.Result) string {
	parts := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		parts = append(parts, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return strings.Join(parts, "; ")
}

// checkWeekInvariants enforces the cross-field rules the structural schema
// cannot express.
func checkWeekInvariants(plan *domain.GeneratedPlan, profile domain.UserProfile) error {
	if len(plan.Week) != len(domain.WeekdayOrder) {
		return fmt.Errorf("%w: week has %d days, want %d", ErrSchemaViolation, len(plan.Week), len(domain.WeekdayOrder))
	}

	for i, day := range plan.Week {
		if day.Day != domain.WeekdayOrder[i] {
			return fmt.Errorf("%w: day %d is %q, want %q", ErrSchemaViolation, i, day.Day, domain.WeekdayOrder[i])
		}
		if day.EstimatedMinutes > profile.TimePerDayMinutes {
			return fmt.Errorf("%w: %s estimated_minutes %d exceeds budget %d",
				ErrSchemaViolation, day.Day, day.EstimatedMinutes, profile.TimePerDayMinutes)
		}

		switch day.DayType {
		case domain.DayTypeRest:
			if day.Warmup != nil || len(day.Exercises) > 0 || day.Cooldown != nil {
				return fmt.Errorf("%w: rest day %s carries workout blocks", ErrSchemaViolation, day.Day)
			}
			if strings.TrimSpace(day.Notes) == "" {
				return fmt.Errorf("%w: rest day %s is missing an explanatory note", ErrSchemaViolation, day.Day)
			}
		case domain.DayTypeWorkout:
			if len(day.Exercises) == 0 {
				return fmt.Errorf("%w: workout day %s has no exercises", ErrSchemaViolation, day.Day)
			}
			for _, ex := range day.Exercises {
				if err := checkExercise(ex, profile); err != nil {
					return fmt.Errorf("%w on %s", err, day.Day)
				}
			}
		}
	}
	return nil
}

func checkExercise(ex domain.Exercise, profile domain.UserProfile) error {
	if err := checkEquipment(ex, profile); err != nil {
		return err
	}
	if err := checkSubstitutions(ex, profile); err != nil {
		return err
	}
	return nil
}

// checkEquipment verifies the exercise only uses items from the profile's
// equipment list. An empty list, "none" or "bodyweight" is always allowed.
func checkEquipment(ex domain.Exercise, profile domain.UserProfile) error {
	allowed := map[string]bool{}
	for _, item := range profile.Equipment {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" && item != "none" {
			allowed[item] = true
		}
	}

	for _, item := range ex.Equipment {
		norm := strings.ToLower(strings.TrimSpace(item))
		if norm == "" || norm == "none" || norm == "bodyweight" {
			continue
		}
		if !allowed[norm] {
			return fmt.Errorf("%w: exercise %q uses unavailable equipment %q", ErrSchemaViolation, ex.Name, item)
		}
	}
	return nil
}

// checkSubstitutions requires a non-empty substitutions list whenever the
// exercise loads a muscle group affected by one of the profile's injuries.
func checkSubstitutions(ex domain.Exercise, profile domain.UserProfile) error {
	if len(ex.Substitutions) > 0 {
		return nil
	}
	for _, injury := range profile.Injuries {
		groups, ok := injuryMuscleGroups[strings.ToLower(strings.TrimSpace(injury))]
		if !ok {
			continue // "none" or unmapped
		}
		for _, mg := range ex.MuscleGroups {
			mgNorm := strings.ToLower(mg)
			for _, g := range groups {
				if strings.Contains(mgNorm, g) {
					return fmt.Errorf("%w: exercise %q affects injured area %q but offers no substitutions",
						ErrSchemaViolation, ex.Name, injury)
				}
			}
		}
	}
	return nil
}
