package services

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"lostfound-hub/config"
	"lostfound-hub/models"
)

const (
	// DefaultFeedLimit matches the dashboard's 3-column grid.
	DefaultFeedLimit = 9
	MaxFeedLimit     = 100
)

// FeedPage is one page of the merged lost+found feed. Items never carry
// contact_email; TotalItems counts every matching record across both
// collections so clients can tell when to stop paging.
type FeedPage struct {
	Items      []models.Report `json:"items"`
	TotalItems int64           `json:"totalItems"`
}

// ReportSource is one physical report collection as the feed engine sees it:
// matching records sorted by date_submitted desc then _id desc, and a count
// of all matches. max bounds how many records FindMatching returns.
type ReportSource interface {
	FindMatching(ctx context.Context, query string, max int64) ([]models.Report, error)
	CountMatching(ctx context.Context, query string) (int64, error)
}

// FeedService merges the lost and found collections into one logical feed.
type FeedService struct {
	lost  ReportSource
	found ReportSource
}

func NewFeedService(lost, found ReportSource) *FeedService {
	return &FeedService{lost: lost, found: found}
}

// SearchFeed returns one page of the merged feed, filtered by query when
// non-empty and ordered by date_submitted descending.
//
// Each source is asked for its top skip+limit matching records; the merged
// page can only contain records from within those, so merging the two
// prefixes and slicing [skip, skip+limit) is equivalent to sorting the full
// union once. Skip and limit are never applied per source before the merge.
// A failure in either source fails the whole query.
func (s *FeedService) SearchFeed(ctx context.Context, query string, page, limit int) (FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	skip := (page - 1) * limit
	max := int64(skip + limit)

	var (
		lostItems, foundItems []models.Report
		lostTotal, foundTotal int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lostItems, err = s.lost.FindMatching(gctx, query, max)
		return err
	})
	g.Go(func() error {
		var err error
		foundItems, err = s.found.FindMatching(gctx, query, max)
		return err
	})
	g.Go(func() error {
		var err error
		lostTotal, err = s.lost.CountMatching(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		foundTotal, err = s.found.CountMatching(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		config.GetLogger().WithField("query", query).Error("feed query failed: ", err)
		return FeedPage{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	merged := mergeReports(lostItems, foundItems)
	if skip >= len(merged) {
		merged = nil
	} else {
		merged = merged[skip:]
		if len(merged) > limit {
			merged = merged[:limit]
		}
	}

	items := make([]models.Report, len(merged))
	for i, r := range merged {
		r.ContactEmail = ""
		items[i] = r
	}

	return FeedPage{Items: items, TotalItems: lostTotal + foundTotal}, nil
}

// mergeReports merges two slices already in feed order into one slice with
// the same order.
func mergeReports(a, b []models.Report) []models.Report {
	out := make([]models.Report, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if reportBefore(a[i], b[j]) {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// reportBefore is the feed ordering: date_submitted descending, ties broken
// by _id descending. Hex encoding preserves ObjectID byte order, so the
// string comparison agrees with the store's {_id: -1} sort.
func reportBefore(a, b models.Report) bool {
	if !a.DateSubmitted.Equal(b.DateSubmitted) {
		return a.DateSubmitted.After(b.DateSubmitted)
	}
	return a.ID.Hex() > b.ID.Hex()
}

// BuildFilter turns a search query into a Mongo filter. Matching is
// prefix-anchored and case-insensitive on item_name, category and
// last_seen_location, so the single-field indexes can serve it; an empty
// query matches everything. Regex metacharacters in the query are escaped.
func BuildFilter(query string) bson.M {
	if query == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(query), Options: "i"}
	return bson.M{"$or": []bson.M{
		{"item_name": pattern},
		{"category": pattern},
		{"last_seen_location": pattern},
	}}
}

var feedSort = bson.D{{Key: "date_submitted", Value: -1}, {Key: "_id", Value: -1}}

type mongoSource struct {
	col *mongo.Collection
}

// NewMongoSource wraps a report collection as a ReportSource.
func NewMongoSource(col *mongo.Collection) ReportSource {
	return &mongoSource{col: col}
}

func (m *mongoSource) FindMatching(ctx context.Context, query string, max int64) ([]models.Report, error) {
	opts := options.Find().
		SetSort(feedSort).
		SetLimit(max).
		SetProjection(bson.M{"contact_email": 0})

	cursor, err := m.col.Find(ctx, BuildFilter(query), opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", m.col.Name(), err)
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.col.Name(), err)
	}
	return reports, nil
}

func (m *mongoSource) CountMatching(ctx context.Context, query string) (int64, error) {
	count, err := m.col.CountDocuments(ctx, BuildFilter(query))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", m.col.Name(), err)
	}
	return count, nil
}
