package lifting

// Zone classifies a feature-set drift computation.
type Zone string

const (
	ZoneSilent      Zone = "silent"
	ZoneBorderline  Zone = "borderline drift"
	ZoneDrifted     Zone = "drifted"
	ZoneNewlyLifted Zone = "newly lifted"
)

// Jaccard returns the Jaccard distance (1 - |intersection|/|union|)
// between two feature sets. Two empty sets have distance 0.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	setA := toSet(a)
	setB := toSet(b)

	intersection := 0
	for f := range setA {
		if setB[f] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return 1.0 - float64(intersection)/float64(union)
}

func toSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, f := range list {
		set[f] = true
	}
	return set
}

// ClassifyDrift zones a re-lifted entity per spec §4.4: an entity with no
// prior features is ZoneNewlyLifted; otherwise distance determines the
// zone against the configured thresholds.
func ClassifyDrift(oldFeatures, newFeatures []string, driftIgnore, driftAuto float64) (Zone, float64) {
	if len(oldFeatures) == 0 {
		return ZoneNewlyLifted, Jaccard(oldFeatures, newFeatures)
	}
	d := Jaccard(oldFeatures, newFeatures)
	switch {
	case d < driftIgnore:
		return ZoneSilent, d
	case d <= driftAuto:
		return ZoneBorderline, d
	default:
		return ZoneDrifted, d
	}
}
