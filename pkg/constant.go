package pkg

import "strings"

// enum of road surface condition, ordered from best to worst. UNKNOWN_CONDITION is last but is not the worst.
type RoadCondition uint8

const (
	EXCELLENT RoadCondition = iota
	GOOD
	SATISFACTORY
	UNSATISFACTORY
	EMERGENCY
	SUPEREMERGENCY
	UNKNOWN_CONDITION
)

var Conditions = []RoadCondition{
	EXCELLENT, GOOD, SATISFACTORY, UNSATISFACTORY, EMERGENCY, SUPEREMERGENCY, UNKNOWN_CONDITION,
}

const (
	INF_WEIGHT float64 = 1e15

	METERS_PER_DEGREE_LAT     = 111320.0
	DEFAULT_MERGE_TOLERANCE_M = 8.0
	DEFAULT_SNAP_PRECISION    = 1e5 // ~1 meter, used when merge tolerance is 0
	DEFAULT_SENSITIVITY       = 5.0
)

func (c RoadCondition) String() string {
	switch c {
	case EXCELLENT:
		return "excellent"
	case GOOD:
		return "good"
	case SATISFACTORY:
		return "satisfactory"
	case UNSATISFACTORY:
		return "unsatisfactory"
	case EMERGENCY:
		return "emergency"
	case SUPEREMERGENCY:
		return "superemergency"
	default:
		return "unknown"
	}
}

// GetRoadCondition. maps a condition label to RoadCondition.
// labels of the road survey dataset (stav_sil) are in czech, english names are accepted too.
func GetRoadCondition(label string) RoadCondition {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "výborný", "excellent":
		return EXCELLENT
	case "dobrý", "good":
		return GOOD
	case "vyhovující", "satisfactory":
		return SATISFACTORY
	case "nevyhovující", "unsatisfactory", "poor":
		return UNSATISFACTORY
	case "havarijní", "emergency", "bad":
		return EMERGENCY
	case "superhavarijní", "superemergency", "superbad":
		return SUPEREMERGENCY
	default:
		return UNKNOWN_CONDITION
	}
}

// GetSmoothnessCondition. maps the openstreetmap smoothness tag to RoadCondition.
// https://wiki.openstreetmap.org/wiki/Key:smoothness
func GetSmoothnessCondition(smoothness string) RoadCondition {
	switch smoothness {
	case "excellent":
		return EXCELLENT
	case "good":
		return GOOD
	case "intermediate":
		return SATISFACTORY
	case "bad":
		return UNSATISFACTORY
	case "very_bad":
		return EMERGENCY
	case "horrible", "very_horrible", "impassable":
		return SUPEREMERGENCY
	default:
		return UNKNOWN_CONDITION
	}
}
