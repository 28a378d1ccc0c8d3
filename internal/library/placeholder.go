package library

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/vmunix/whatch/pkg/medianame"
)

const (
	maxPlaceholders  = 999
	maxIntervalDays  = 365
	defaultEveryDays = 7
)

// PlaceholderRequest describes a run of placeholder episodes for a series.
type PlaceholderRequest struct {
	SeriesTitle string
	MediaType   medianame.MediaType
	Season      int
	Count       int
	// Titles name the episodes in order; missing or blank entries fall back
	// to the episode code.
	Titles []string
	// FirstAir, when set, dates the first placeholder; later ones follow
	// every EveryDays days.
	FirstAir  *time.Time
	EveryDays int
}

// NextEpisodeNumber returns one past the highest episode already indexed for
// season in the series, or 1 when there is none.
func NextEpisodeNumber(items []*Item, seriesTitle string, season int, mt medianame.MediaType) int {
	highest := 0
	for _, it := range items {
		if it.SeriesTitle != seriesTitle || it.MediaType != mt {
			continue
		}
		for _, p := range medianame.ParseSeriesIndexValues(it.SeriesIndex) {
			if p.Season == season {
				highest = max(highest, p.Episode)
			}
		}
	}
	return highest + 1
}

// PlanPlaceholders builds the placeholder items for req, numbered after the
// episodes already in items. Nothing is written.
func PlanPlaceholders(items []*Item, req PlaceholderRequest) ([]*Item, error) {
	title := strings.TrimSpace(req.SeriesTitle)
	switch {
	case title == "":
		return nil, fmt.Errorf("%w: series title is required", ErrInvalidPlaceholder)
	case req.Season < 0:
		return nil, fmt.Errorf("%w: season %d", ErrInvalidPlaceholder, req.Season)
	case req.Count < 1 || req.Count > maxPlaceholders:
		return nil, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidPlaceholder, maxPlaceholders)
	}
	every := req.EveryDays
	if every == 0 {
		every = defaultEveryDays
	}
	if req.FirstAir != nil && (every < 1 || every > maxIntervalDays) {
		return nil, fmt.Errorf("%w: interval must be between 1 and %d days", ErrInvalidPlaceholder, maxIntervalDays)
	}
	mt := req.MediaType
	if mt == "" {
		mt = medianame.TV
	}

	start := NextEpisodeNumber(items, title, req.Season, mt)
	planned := make([]*Item, 0, req.Count)
	for i := range req.Count {
		ep := start + i
		display := ""
		if i < len(req.Titles) {
			display = strings.TrimSpace(req.Titles[i])
		}
		if display == "" {
			display = medianame.FormatEpisodeCode(req.Season, ep, ep)
		}
		var air string
		if req.FirstAir != nil {
			air = req.FirstAir.AddDate(0, 0, every*i).Format(AirTimeLayout)
		}
		planned = append(planned, &Item{
			Path:          fmt.Sprintf("%s%s::S%dE%d::%s", PlaceholderPrefix, title, req.Season, ep, uuid.NewString()),
			MediaType:     mt,
			DisplayTitle:  display,
			IsSeries:      true,
			SeriesTitle:   title,
			SeriesIndex:   fmt.Sprintf("%d.%d", req.Season, ep),
			IsPlaceholder: true,
			AirDateTime:   air,
		})
	}
	return planned, nil
}

// AiringUpdate is a series whose currently-airing flag should be set to
// Airing.
type AiringUpdate struct {
	SeriesTitle string
	MediaType   medianame.MediaType
	Airing      bool
}

// AiringUpdates derives the currently-airing flag from placeholder air
// times. A series with a placeholder airing after now is airing; a series
// whose dated placeholders have all aired is not. Series without dated
// placeholders are left alone.
func AiringUpdates(items []*Item, now time.Time) []AiringUpdate {
	status := map[seriesKey]bool{}
	for _, it := range items {
		if it.SeriesTitle == "" || !it.IsPlaceholder {
			continue
		}
		at, ok := it.AirTime()
		if !ok {
			continue
		}
		key := seriesKey{it.MediaType, it.SeriesTitle}
		status[key] = status[key] || at.After(now)
	}

	updates := make([]AiringUpdate, 0, len(status))
	for key, airing := range status {
		updates = append(updates, AiringUpdate{SeriesTitle: key.title, MediaType: key.mediaType, Airing: airing})
	}
	slices.SortFunc(updates, func(a, b AiringUpdate) int {
		if c := strings.Compare(string(a.MediaType), string(b.MediaType)); c != 0 {
			return c
		}
		return strings.Compare(a.SeriesTitle, b.SeriesTitle)
	})
	return updates
}

// ApplyAutoAiring recomputes the currently-airing flags from placeholder air
// times in one transaction.
func (s *Store) ApplyAutoAiring(now time.Time) error {
	items, _, err := s.ListItems(ItemFilter{IsPlaceholder: lo.ToPtr(true)})
	if err != nil {
		return err
	}
	updates := AiringUpdates(items, now)
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, u := range updates {
		if err := tx.UpdateCurrentlyAiring(u.SeriesTitle, u.MediaType, u.Airing); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AddPlaceholders plans req against the current library and inserts the
// placeholders in one transaction.
func (s *Store) AddPlaceholders(req PlaceholderRequest) ([]*Item, error) {
	existing, _, err := s.ListItems(ItemFilter{SeriesTitle: lo.ToPtr(strings.TrimSpace(req.SeriesTitle))})
	if err != nil {
		return nil, err
	}
	planned, err := PlanPlaceholders(existing, req)
	if err != nil {
		return nil, err
	}

	tx, err := s.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()
	for _, it := range planned {
		if _, err := tx.AddItem(it); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit placeholders: %w", err)
	}
	return planned, nil
}
