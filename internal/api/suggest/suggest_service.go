package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

// MaxSuggestions caps the dropdown size.
const MaxSuggestions = 8

// MinQueryLength is the shortest query that produces suggestions.
const MinQueryLength = 2

const (
	snapshotKey = "suggest:snapshot"
	snapshotTTL = 5 * time.Minute
)

// HotelSource provides the hotel reference projection.
type HotelSource interface {
	ListRefs(ctx context.Context) ([]types.HotelRef, error)
}

// TagSource provides the tag reference projection.
type TagSource interface {
	ListRefs(ctx context.Context) ([]types.TagRef, error)
}

// snapshot is the in-memory reference set suggestions match against.
type snapshot struct {
	hotels []types.HotelRef
	tags   []types.TagRef
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Suggest(ctx context.Context, query string) ([]types.Suggestion, error)
	Refresh(ctx context.Context) error
}

type ServiceImpl struct {
	hotels HotelSource
	tags   TagSource
	cache  *cache.Cache
	logger *slog.Logger
}

func NewService(hotels HotelSource, tags TagSource, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		hotels: hotels,
		tags:   tags,
		cache:  cache.New(snapshotTTL, 10*time.Minute),
		logger: logger,
	}
}

// Suggest matches the query against hotel names, then distinct hotel
// locations, then tag names, case-insensitively by substring. The
// ordering is fixed so hotel hits always outrank location hits, which
// outrank tag hits, and the combined list is capped.
func (s *ServiceImpl) Suggest(ctx context.Context, query string) ([]types.Suggestion, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return []types.Suggestion{}, nil
	}

	// A failed snapshot load degrades to an empty dropdown; the search
	// box still submits the raw query as free text.
	snap, err := s.load(ctx)
	if err != nil {
		return []types.Suggestion{}, nil
	}

	needle := strings.ToLower(query)
	suggestions := []types.Suggestion{}

	for _, h := range snap.hotels {
		if strings.Contains(strings.ToLower(h.Name), needle) {
			suggestions = append(suggestions, types.Suggestion{
				Type:  types.SuggestionHotel,
				Value: h.Name,
				Label: h.Name,
			})
		}
	}

	seen := map[string]bool{}
	for _, h := range snap.hotels {
		lower := strings.ToLower(h.Location)
		if seen[lower] || !strings.Contains(lower, needle) {
			continue
		}
		seen[lower] = true
		suggestions = append(suggestions, types.Suggestion{
			Type:  types.SuggestionLocation,
			Value: h.Location,
			Label: h.Location,
		})
	}

	for _, t := range snap.tags {
		if strings.Contains(strings.ToLower(t.Name), needle) {
			suggestions = append(suggestions, types.Suggestion{
				Type:  types.SuggestionTag,
				Value: t.Slug,
				Label: t.Name,
				Icon:  t.Icon,
			})
		}
	}

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions, nil
}

// Refresh rebuilds the reference snapshot immediately instead of
// waiting for the TTL to lapse. Admin writes call it after mutating
// hotels or tags.
func (s *ServiceImpl) Refresh(ctx context.Context) error {
	snap, err := s.build(ctx)
	if err != nil {
		return err
	}
	s.cache.Set(snapshotKey, snap, snapshotTTL)
	return nil
}

func (s *ServiceImpl) load(ctx context.Context) (*snapshot, error) {
	if v, ok := s.cache.Get(snapshotKey); ok {
		return v.(*snapshot), nil
	}
	snap, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(snapshotKey, snap, snapshotTTL)
	return snap, nil
}

// build loads both reference sets in parallel.
func (s *ServiceImpl) build(ctx context.Context) (*snapshot, error) {
	l := s.logger.With(slog.String("method", "build"))

	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		refs, err := s.hotels.ListRefs(gctx)
		if err != nil {
			return fmt.Errorf("failed to load hotel refs: %w", err)
		}
		snap.hotels = refs
		return nil
	})
	g.Go(func() error {
		refs, err := s.tags.ListRefs(gctx)
		if err != nil {
			return fmt.Errorf("failed to load tag refs: %w", err)
		}
		snap.tags = refs
		return nil
	})
	if err := g.Wait(); err != nil {
		l.ErrorContext(ctx, "Failed to build suggestion snapshot", slog.Any("error", err))
		return nil, err
	}

	l.DebugContext(ctx, "Suggestion snapshot built",
		slog.Int("hotels", len(snap.hotels)), slog.Int("tags", len(snap.tags)))
	return &snap, nil
}
