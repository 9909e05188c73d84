package freshness

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/colonyops/stale/internal/core/config"
)

// ResolvedDate is the outcome of a single date resolution. Found is false
// when the configured strategy produced no usable date; that is a normal
// outcome, not an error.
type ResolvedDate struct {
	Time  time.Time
	Found bool
}

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
}

// ParseDate parses s against the accepted layouts. Returns false when no
// layout matches. Layouts without zone information are interpreted in the
// local time zone, the same zone the resolved date is later compared
// against; parsing them as UTC would shift the written calendar date in
// any non-UTC host zone.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Resolver produces a candidate last-updated timestamp for a document
// according to an immutable configuration snapshot.
type Resolver struct {
	cfg     config.Freshness
	pattern *regexp.Regexp // compiled capture-group pattern, nil otherwise
}

// NewResolver constructs a Resolver for the given snapshot. The capture
// group pattern is compiled once here; an invalid pattern or a pattern
// without the named `date` group is rejected.
func NewResolver(cfg config.Freshness) (*Resolver, error) {
	r := &Resolver{cfg: cfg}

	if cfg.DateSource == config.DateSourceCaptureGroup {
		pattern, err := regexp.Compile(cfg.CaptureGroupPattern)
		if err != nil {
			return nil, fmt.Errorf("compile capture group pattern: %w", err)
		}
		if pattern.SubexpIndex("date") < 0 {
			return nil, fmt.Errorf("capture group pattern has no (?P<date>...) group")
		}
		r.pattern = pattern
	}

	return r, nil
}

// Resolve dispatches on the configured date source. Errors are host I/O
// failures only; a date that cannot be found or parsed is Found=false.
// An unrecognized date source is a programming-invariant violation and
// panics: config validation rejects it long before it can reach here.
func (r *Resolver) Resolve(ctx context.Context, doc Document) (ResolvedDate, error) {
	switch r.cfg.DateSource {
	case config.DateSourceModifiedTime:
		return r.resolveModifiedTime(doc)
	case config.DateSourceFrontMatter:
		return r.resolveFrontMatter(ctx, doc)
	case config.DateSourceCaptureGroup:
		return r.resolveCaptureGroup(ctx, doc)
	default:
		panic(fmt.Sprintf("freshness: unrecognized date source %q", r.cfg.DateSource))
	}
}

// resolveModifiedTime always resolves: every document has a mod time.
func (r *Resolver) resolveModifiedTime(doc Document) (ResolvedDate, error) {
	t, err := doc.ModTime()
	if err != nil {
		return ResolvedDate{}, err
	}
	return ResolvedDate{Time: t, Found: true}, nil
}

func (r *Resolver) resolveFrontMatter(ctx context.Context, doc Document) (ResolvedDate, error) {
	text, err := doc.Content(ctx)
	if err != nil {
		return ResolvedDate{}, err
	}

	fm, ok := ExtractFrontMatter(text)
	if !ok {
		return ResolvedDate{}, nil
	}

	value, ok := fm[r.cfg.FrontMatterKey]
	if !ok {
		return ResolvedDate{}, nil
	}

	t, ok := ParseDate(value)
	if !ok {
		return ResolvedDate{}, nil
	}
	return ResolvedDate{Time: t, Found: true}, nil
}

// resolveCaptureGroup scans lines in document order and stops at the first
// line the pattern matches. An empty `date` group on that line resolves to
// absent; later lines are not consulted.
func (r *Resolver) resolveCaptureGroup(ctx context.Context, doc Document) (ResolvedDate, error) {
	text, err := doc.Content(ctx)
	if err != nil {
		return ResolvedDate{}, err
	}

	idx := r.pattern.SubexpIndex("date")
	for _, line := range strings.Split(text, "\n") {
		m := r.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if m[idx] == "" {
			return ResolvedDate{}, nil
		}
		t, ok := ParseDate(m[idx])
		if !ok {
			return ResolvedDate{}, nil
		}
		return ResolvedDate{Time: t, Found: true}, nil
	}

	return ResolvedDate{}, nil
}
