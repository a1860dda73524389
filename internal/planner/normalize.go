package planner

import (
	"strings"

	"egym/plan-service/internal/domain"
	"egym/plan-service/internal/logger"
)

// NormalizeProfile coerces a raw, loosely-typed preferences record into a
// complete UserProfile. Each field is defaulted independently, so garbage in
// one field never invalidates the others. Defaulting is silent towards the
// caller; replaced fields are only logged.
func NormalizeProfile(raw map[string]interface{}, log *logger.Logger) domain.UserProfile {
	if raw == nil {
		raw = map[string]interface{}{}
	}

	profile := domain.UserProfile{
		Goal:              normalizeEnum(raw, "goal", domain.GoalValues, domain.DefaultGoal, log),
		SkillLevel:        normalizeEnum(raw, "skillLevel", domain.SkillLevelValues, domain.DefaultSkillLevel, log),
		Injuries:          normalizeEnumList(raw, "injuries", domain.InjuryValues, []string{"none"}, log),
		MobilityLevel:     normalizeEnum(raw, "mobilityLevel", domain.MobilityLevelValues, domain.DefaultMobilityLevel, log),
		Equipment:         normalizeEnumList(raw, "equipment", domain.EquipmentValues, []string{"none"}, log),
		TimePerDayMinutes: normalizeMinutes(raw, log),
	}
	return profile
}

func normalizeEnum(raw map[string]interface{}, key string, allowed []string, def string, log *logger.Logger) string {
	v, ok := raw[key].(string)
	if ok {
		v = strings.TrimSpace(v)
		if containsString(allowed, v) {
			return v
		}
	}
	if _, present := raw[key]; present && log != nil {
		log.Info("profile field defaulted", "field", key, "default", def)
	}
	return def
}

// normalizeEnumList coerces a field to a list of allowed members. Values of
// the wrong type and members outside the vocabulary are dropped; an empty
// result falls back to the default.
func normalizeEnumList(raw map[string]interface{}, key string, allowed, def []string, log *logger.Logger) []string {
	items, ok := stringSlice(raw[key])
	if !ok {
		if _, present := raw[key]; present && log != nil {
			log.Info("profile field defaulted", "field", key, "default", def)
		}
		return append([]string(nil), def...)
	}

	out := make([]string, 0, len(items))
	seen := map[string]bool{}
	for _, item := range items {
		item = strings.TrimSpace(item)
		if !containsString(allowed, item) || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	if len(out) == 0 {
		if log != nil {
			log.Info("profile field defaulted", "field", key, "default", def)
		}
		return append([]string(nil), def...)
	}
	if len(out) != len(items) && log != nil {
		log.Info("profile field members dropped", "field", key, "kept", len(out), "given", len(items))
	}
	return out
}

func normalizeMinutes(raw map[string]interface{}, log *logger.Logger) int {
	minutes, ok := intValue(raw["timePerDayMinutes"])
	if ok && minutes >= domain.MinTimePerDayMinutes && minutes <= domain.MaxTimePerDayMinutes {
		return minutes
	}
	if _, present := raw["timePerDayMinutes"]; present && log != nil {
		log.Info("profile field defaulted", "field", "timePerDayMinutes", "default", domain.DefaultTimePerDayMinutes)
	}
	return domain.DefaultTimePerDayMinutes
}

// stringSlice accepts both []string and the []interface{} shape JSON and
// BSON decoding produce.
func stringSlice(v interface{}) ([]string, bool) {
	switch items := v.(type) {
	case []string:
		return items, true
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// intValue accepts the numeric types JSON and BSON decoding produce.
func intValue(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
