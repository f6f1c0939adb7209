package render

import (
	"context"
	"strings"
	"unicode"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// Reading speeds. Ideographic locales are measured in characters per
// minute, the rest in words per minute.
const (
	JapaneseCharsPerMinute = 400
	ChineseCharsPerMinute  = 300
	WordsPerMinute         = 200
)

// ReadingUnits counts the measurable units of plain text for a locale:
// non-space characters for ideographic locales, words otherwise.
func ReadingUnits(plain string, locale domain.Locale) int {
	if !locale.Ideographic() {
		return len(strings.Fields(plain))
	}
	n := 0
	for _, r := range plain {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// unitsPerMinute returns the reading speed of a locale.
func unitsPerMinute(locale domain.Locale) int {
	switch locale {
	case domain.LocaleJA:
		return JapaneseCharsPerMinute
	case domain.LocaleZhTW, domain.LocaleZhCN:
		return ChineseCharsPerMinute
	default:
		return WordsPerMinute
	}
}

// EstimateReadingTime returns whole minutes, rounded up, to read markup in
// locale. The result is at least 1.
func EstimateReadingTime(markup string, locale domain.Locale) int {
	units := ReadingUnits(StripMarkup(markup), locale)
	rate := unitsPerMinute(locale)
	minutes := (units + rate - 1) / rate
	if minutes < 1 {
		return 1
	}
	return minutes
}

// ReadingTimeStage fills Job.ReadingTime from Job.Body.
type ReadingTimeStage struct{}

// Name returns the stage name.
func (ReadingTimeStage) Name() string { return "readingtime" }

// Process estimates the reading time of the job body.
func (ReadingTimeStage) Process(_ context.Context, job *Job) error {
	job.ReadingTime = EstimateReadingTime(string(job.Body), job.Locale)
	return nil
}
