package freshness

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/colonyops/stale/internal/core/config"
)

// Kind classifies a banner.
type Kind string

// Banner kinds.
const (
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// MissingDateMessage is shown when no date resolves and the configuration
// asks for missing dates to be surfaced.
const MissingDateMessage = "The date was not found"

// Template placeholder tokens, each substituted exactly once.
const (
	placeholderDays = "${numberOfDays}"
	placeholderDate = "${date}"
)

// dateFormat is how the resolved date appears inside the rendered message.
const dateFormat = "2006-01-02"

// Decision is the outcome of a staleness evaluation. The zero value means
// no banner.
type Decision struct {
	Show bool
	Text string
	Kind Kind
}

// Evaluate compares the resolved date against now and decides whether a
// banner is shown. The day difference uses calendar-day truncation: both
// instants are truncated to local midnight before diffing, so a date from
// earlier today is 0 days old regardless of clock time.
func Evaluate(resolved ResolvedDate, cfg config.Freshness, now time.Time) Decision {
	if !resolved.Found {
		if cfg.WarnOnMissingDate {
			return Decision{Show: true, Text: MissingDateMessage, Kind: KindError}
		}
		return Decision{}
	}

	days := DaysBetween(resolved.Time, now)
	if days >= cfg.MinDaysToWarn {
		return Decision{
			Show: true,
			Text: renderMessage(cfg.MessageTemplate, days, resolved.Time),
			Kind: KindWarning,
		}
	}

	return Decision{}
}

// DaysBetween returns the difference between from and to in whole calendar
// days. Each endpoint is truncated to midnight in its own location so the
// calendar date the author wrote is preserved rather than re-read in the
// other endpoint's zone. Same-day is 0; a future from yields a negative
// count.
func DaysBetween(from, to time.Time) int {
	from = truncateToDay(from)
	to = truncateToDay(to)
	// Round absorbs the odd hour a DST transition or a zone offset adds
	// or removes.
	return int(math.Round(to.Sub(from).Hours() / 24))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// renderMessage substitutes the day count and the formatted date into the
// template, replacing the first occurrence of each placeholder only.
func renderMessage(template string, days int, date time.Time) string {
	out := strings.Replace(template, placeholderDays, strconv.Itoa(days), 1)
	out = strings.Replace(out, placeholderDate, date.Format(dateFormat), 1)
	return out
}
