package freshness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/stale/internal/core/config"
)

// fakeDoc is an in-memory Document for tests. Content reads are counted so
// tests can assert the no-caching contract.
type fakeDoc struct {
	path       string
	content    string
	mod        time.Time
	contentErr error
	modErr     error
	reads      int
}

func (d *fakeDoc) Path() string { return d.path }

func (d *fakeDoc) Content(_ context.Context) (string, error) {
	d.reads++
	if d.contentErr != nil {
		return "", d.contentErr
	}
	return d.content, nil
}

func (d *fakeDoc) ModTime() (time.Time, error) {
	if d.modErr != nil {
		return time.Time{}, d.modErr
	}
	return d.mod, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestResolver_ModifiedTime_AlwaysResolves(t *testing.T) {
	mod := time.Date(2023, 4, 5, 12, 30, 0, 0, time.UTC)
	doc := &fakeDoc{path: "a.md", mod: mod}

	r, err := NewResolver(config.Freshness{DateSource: config.DateSourceModifiedTime})
	require.NoError(t, err)

	resolved, err := r.Resolve(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, resolved.Found)
	assert.Equal(t, mod, resolved.Time)
}

func TestResolver_FrontMatter(t *testing.T) {
	cfg := config.Freshness{
		DateSource:     config.DateSourceFrontMatter,
		FrontMatterKey: "updated",
	}

	tests := []struct {
		name    string
		content string
		want    time.Time
		wantHit bool
	}{
		{
			name:    "key present with parseable date",
			content: "---\nupdated: 2023-06-01\n---\nbody",
			want:    date(2023, 6, 1),
			wantHit: true,
		},
		{
			name:    "no front matter",
			content: "body only",
		},
		{
			name:    "key absent",
			content: "---\ncreated: 2023-06-01\n---\nbody",
		},
		{
			name:    "unparseable value",
			content: "---\nupdated: someday\n---\nbody",
		},
		{
			name:    "slash date layout",
			content: "---\nupdated: 2023/06/01\n---\nbody",
			want:    date(2023, 6, 1),
			wantHit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResolver(cfg)
			require.NoError(t, err)

			resolved, err := r.Resolve(context.Background(), &fakeDoc{content: tt.content})
			require.NoError(t, err)
			assert.Equal(t, tt.wantHit, resolved.Found)
			if tt.wantHit {
				assert.Equal(t, tt.want, resolved.Time)
			}
		})
	}
}

func TestResolver_FrontMatter_ReadsFreshEachCall(t *testing.T) {
	cfg := config.Freshness{
		DateSource:     config.DateSourceFrontMatter,
		FrontMatterKey: "updated",
	}
	r, err := NewResolver(cfg)
	require.NoError(t, err)

	doc := &fakeDoc{content: "---\nupdated: 2023-06-01\n---\n"}

	_, err = r.Resolve(context.Background(), doc)
	require.NoError(t, err)

	doc.content = "---\nupdated: 2024-02-02\n---\n"
	resolved, err := r.Resolve(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, 2, doc.reads)
	assert.Equal(t, date(2024, 2, 2), resolved.Time)
}

func TestResolver_CaptureGroup(t *testing.T) {
	cfg := config.Freshness{
		DateSource:          config.DateSourceCaptureGroup,
		CaptureGroupPattern: `^// (?P<date>[0-9]{4}/[0-9]{2}/[0-9]{2})`,
	}

	tests := []struct {
		name    string
		content string
		want    time.Time
		wantHit bool
	}{
		{
			name:    "first matching line wins",
			content: "# title\n// 2022/05/01 note\n// 2023/01/01 later\n",
			want:    date(2022, 5, 1),
			wantHit: true,
		},
		{
			name:    "no matching line",
			content: "# title\nplain text\n",
		},
		{
			name:    "matching line with unparseable capture",
			content: "// 9999/99/99 bogus\n// 2022/05/01 valid later\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResolver(cfg)
			require.NoError(t, err)

			resolved, err := r.Resolve(context.Background(), &fakeDoc{content: tt.content})
			require.NoError(t, err)
			assert.Equal(t, tt.wantHit, resolved.Found)
			if tt.wantHit {
				assert.Equal(t, tt.want, resolved.Time)
			}
		})
	}
}

func TestResolver_CaptureGroup_EmptyGroupIsAbsent(t *testing.T) {
	cfg := config.Freshness{
		DateSource:          config.DateSourceCaptureGroup,
		CaptureGroupPattern: `^// ?(?P<date>[0-9/]*)`,
	}
	r, err := NewResolver(cfg)
	require.NoError(t, err)

	resolved, err := r.Resolve(context.Background(), &fakeDoc{content: "//\n// 2022/05/01\n"})
	require.NoError(t, err)
	assert.False(t, resolved.Found, "empty group on the first matching line resolves to absent")
}

func TestNewResolver_RejectsBadPatterns(t *testing.T) {
	_, err := NewResolver(config.Freshness{
		DateSource:          config.DateSourceCaptureGroup,
		CaptureGroupPattern: `([0-9]{4})`,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")

	_, err = NewResolver(config.Freshness{
		DateSource:          config.DateSourceCaptureGroup,
		CaptureGroupPattern: `(?P<date>[`,
	})
	require.Error(t, err)
}

func TestResolver_UnknownSource_Panics(t *testing.T) {
	r := &Resolver{cfg: config.Freshness{DateSource: "mystery"}}
	assert.Panics(t, func() {
		_, _ = r.Resolve(context.Background(), &fakeDoc{})
	})
}

func TestResolver_PropagatesReadErrors(t *testing.T) {
	readErr := errors.New("disk gone")

	cfg := config.Freshness{DateSource: config.DateSourceFrontMatter, FrontMatterKey: "updated"}
	r, err := NewResolver(cfg)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), &fakeDoc{contentErr: readErr})
	assert.ErrorIs(t, err, readErr)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{in: "2024-01-01", want: date(2024, 1, 1), wantOK: true},
		{in: "2022/05/01", want: date(2022, 5, 1), wantOK: true},
		{in: "2024-01-01T10:00:00Z", want: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), wantOK: true},
		{in: " 2024-01-01 ", want: date(2024, 1, 1), wantOK: true},
		{in: "not a date", wantOK: false},
		{in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got))
			}
		})
	}
}

func TestParseDate_DateOnlyLayoutsAreLocal(t *testing.T) {
	got, ok := ParseDate("2024-01-04")
	require.True(t, ok)

	assert.Equal(t, time.Local, got.Location())
	y, m, d := got.Date()
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.January, m)
	assert.Equal(t, 4, d)
	assert.Equal(t, 0, got.Hour())
}
