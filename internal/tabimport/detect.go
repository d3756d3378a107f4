package tabimport

import (
	"regexp"
	"strconv"
	"strings"

	"taskgrid-cli/internal/model"
)

const typeSampleLimit = 5

var (
	reDateDMY   = regexp.MustCompile(`^\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}$`)
	reDateISO   = regexp.MustCompile(`^\d{4}[-/.]\d{1,2}[-/.]\d{1,2}$`)
	reDateWords = regexp.MustCompile(`^\d{1,2}\s+[A-Za-z]{3,}\.?,?\s+\d{2,4}$`)
	reEmail     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reURL       = regexp.MustCompile(`^(https?://|www\.)\S+$`)
)

// DetectType infers a column type from the first few non-empty values under
// an imported header. Detectors run in strict priority order; a column with
// no sample data at all comes out as text.
func DetectType(values []string) model.ColumnType {
	var samples []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		samples = append(samples, v)
		if len(samples) == typeSampleLimit {
			break
		}
	}
	if len(samples) == 0 {
		return model.TypeText
	}

	numeric := 0
	for _, v := range samples {
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			numeric++
		}
	}
	if numeric == len(samples) {
		return model.TypeNumber
	}

	if ratioMatch(samples, func(v string) bool {
		return reDateDMY.MatchString(v) || reDateISO.MatchString(v) || reDateWords.MatchString(v)
	}) {
		return model.TypeDate
	}
	if ratioMatch(samples, reEmail.MatchString) {
		return model.TypeEmail
	}
	if ratioMatch(samples, reURL.MatchString) {
		return model.TypeURL
	}

	for _, v := range samples {
		if strings.Contains(v, "\n") || len(v) > 100 {
			return model.TypeTextarea
		}
	}
	return model.TypeText
}

// ratioMatch reports whether at least 80% of the samples satisfy the detector.
func ratioMatch(samples []string, match func(string) bool) bool {
	hits := 0
	for _, v := range samples {
		if match(v) {
			hits++
		}
	}
	return float64(hits) >= 0.8*float64(len(samples))
}
