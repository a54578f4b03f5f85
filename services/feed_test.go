package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lostfound-hub/models"
)

// fakeSource implements ReportSource in memory with the same matching and
// ordering rules as the Mongo-backed source: case-insensitive prefix match
// on the three searched fields, sorted by date_submitted desc then _id desc.
type fakeSource struct {
	reports []models.Report
	err     error
}

func (f *fakeSource) matching(query string) []models.Report {
	prefix := func(field string) bool {
		return strings.HasPrefix(strings.ToLower(field), strings.ToLower(query))
	}
	var out []models.Report
	for _, r := range f.reports {
		if query == "" || prefix(r.ItemName) || prefix(r.Category) || prefix(r.LastSeenLocation) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return reportBefore(out[i], out[j]) })
	return out
}

func (f *fakeSource) FindMatching(ctx context.Context, query string, max int64) ([]models.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := f.matching(query)
	if int64(len(out)) > max {
		out = out[:max]
	}
	// the store projection drops contact_email before it reaches the engine,
	// but the engine must strip it even when a source leaks it
	return out, nil
}

func (f *fakeSource) CountMatching(ctx context.Context, query string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.matching(query))), nil
}

func oid(n int) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(fmt.Sprintf("%024x", n))
	if err != nil {
		panic(err)
	}
	return id
}

func report(n int, submitted time.Time, status, name, category, location string) models.Report {
	return models.Report{
		ID:               oid(n),
		ItemName:         name,
		Category:         category,
		LastSeenLocation: location,
		Description:      "Some description long enough.",
		ContactEmail:     "reporter@example.com",
		Status:           status,
		DateSubmitted:    submitted,
	}
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestSearchFeedInterleavesSources(t *testing.T) {
	t1 := baseTime
	t2 := baseTime.Add(time.Hour)
	t3 := baseTime.Add(2 * time.Hour)

	lost := &fakeSource{reports: []models.Report{
		report(1, t1, models.StatusLost, "Umbrella", "Accessories", "Main entrance"),
		report(3, t3, models.StatusLost, "Phone", "Electronics", "Cafeteria"),
	}}
	found := &fakeSource{reports: []models.Report{
		report(2, t2, models.StatusFound, "Keys", "Keys", "Parking lot B"),
	}}
	svc := NewFeedService(lost, found)

	page1, err := svc.SearchFeed(context.Background(), "", 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), page1.TotalItems)
	require.Len(t, page1.Items, 2)
	require.Equal(t, oid(3), page1.Items[0].ID)
	require.Equal(t, models.StatusLost, page1.Items[0].Status)
	require.Equal(t, oid(2), page1.Items[1].ID)
	require.Equal(t, models.StatusFound, page1.Items[1].Status)

	page2, err := svc.SearchFeed(context.Background(), "", 2, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), page2.TotalItems)
	require.Len(t, page2.Items, 1)
	require.Equal(t, oid(1), page2.Items[0].ID)
}

func TestSearchFeedPagesMatchFullSlice(t *testing.T) {
	// 23 reports spread over both sources, with timestamp collisions
	var lost, found fakeSource
	var all []models.Report
	for n := 1; n <= 23; n++ {
		submitted := baseTime.Add(time.Duration(n/3) * time.Minute)
		r := report(n, submitted, models.StatusLost, "Item", "Misc", "Somewhere nearby")
		if n%2 == 0 {
			r.Status = models.StatusFound
			found.reports = append(found.reports, r)
		} else {
			lost.reports = append(lost.reports, r)
		}
		all = append(all, r)
	}
	sort.SliceStable(all, func(i, j int) bool { return reportBefore(all[i], all[j]) })

	svc := NewFeedService(&lost, &found)
	const limit = 4

	var paged []models.Report
	for page := 1; ; page++ {
		got, err := svc.SearchFeed(context.Background(), "", page, limit)
		require.NoError(t, err)
		require.Equal(t, int64(23), got.TotalItems)
		if len(got.Items) == 0 {
			break
		}
		paged = append(paged, got.Items...)
	}

	require.Len(t, paged, len(all))
	seen := map[primitive.ObjectID]bool{}
	for i, r := range paged {
		require.Equal(t, all[i].ID, r.ID, "position %d", i)
		require.False(t, seen[r.ID], "duplicate %s", r.ID.Hex())
		seen[r.ID] = true
	}
}

func TestSearchFeedTieBreakIsDeterministic(t *testing.T) {
	lost := &fakeSource{reports: []models.Report{
		report(5, baseTime, models.StatusLost, "Scarf", "Clothing", "Library desk"),
	}}
	found := &fakeSource{reports: []models.Report{
		report(9, baseTime, models.StatusFound, "Glove", "Clothing", "Library desk"),
		report(2, baseTime, models.StatusFound, "Hat", "Clothing", "Library desk"),
	}}
	svc := NewFeedService(lost, found)

	for i := 0; i < 3; i++ {
		got, err := svc.SearchFeed(context.Background(), "", 1, 10)
		require.NoError(t, err)
		require.Len(t, got.Items, 3)
		require.Equal(t, oid(9), got.Items[0].ID)
		require.Equal(t, oid(5), got.Items[1].ID)
		require.Equal(t, oid(2), got.Items[2].ID)
	}
}

func TestSearchFeedPrefixPolicy(t *testing.T) {
	lost := &fakeSource{reports: []models.Report{
		report(1, baseTime, models.StatusLost, "Brown wallet", "Wallets/Bags", "North gate"),
		report(2, baseTime.Add(time.Minute), models.StatusLost, "Seawall access card", "Cards", "South gate"),
	}}
	found := &fakeSource{}
	svc := NewFeedService(lost, found)

	got, err := svc.SearchFeed(context.Background(), "wal", 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.TotalItems)
	require.Len(t, got.Items, 1)
	// category "Wallets/Bags" starts with "wal"; "Seawall" only contains it
	require.Equal(t, oid(1), got.Items[0].ID)

	got, err = svc.SearchFeed(context.Background(), "SOUTH", 1, 10)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, oid(2), got.Items[0].ID)
}

func TestSearchFeedStripsContactEmail(t *testing.T) {
	lost := &fakeSource{reports: []models.Report{
		report(1, baseTime, models.StatusLost, "Umbrella", "Accessories", "Main entrance"),
	}}
	svc := NewFeedService(lost, &fakeSource{})

	got, err := svc.SearchFeed(context.Background(), "", 1, 10)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Empty(t, got.Items[0].ContactEmail)

	body, err := json.Marshal(got)
	require.NoError(t, err)
	require.NotContains(t, string(body), "contact_email")
}

func TestSearchFeedFailsWhenEitherSourceFails(t *testing.T) {
	healthy := &fakeSource{reports: []models.Report{
		report(1, baseTime, models.StatusLost, "Umbrella", "Accessories", "Main entrance"),
	}}
	broken := &fakeSource{err: errors.New("connection reset")}

	for _, svc := range []*FeedService{
		NewFeedService(broken, healthy),
		NewFeedService(healthy, broken),
	} {
		_, err := svc.SearchFeed(context.Background(), "", 1, 10)
		require.ErrorIs(t, err, ErrQueryFailed)
	}
}

func TestSearchFeedDefaultsAndBounds(t *testing.T) {
	var reports []models.Report
	for n := 1; n <= 12; n++ {
		reports = append(reports, report(n, baseTime.Add(time.Duration(n)*time.Minute), models.StatusLost, "Item", "Misc", "Somewhere nearby"))
	}
	svc := NewFeedService(&fakeSource{reports: reports}, &fakeSource{})

	got, err := svc.SearchFeed(context.Background(), "", 0, 0)
	require.NoError(t, err)
	require.Len(t, got.Items, DefaultFeedLimit)
	require.Equal(t, int64(12), got.TotalItems)

	// page past the end still reports the real total, with an empty page
	got, err = svc.SearchFeed(context.Background(), "", 50, 5)
	require.NoError(t, err)
	require.NotNil(t, got.Items)
	require.Empty(t, got.Items)
	require.Equal(t, int64(12), got.TotalItems)

	got, err = svc.SearchFeed(context.Background(), "", 1, MaxFeedLimit+500)
	require.NoError(t, err)
	require.Len(t, got.Items, 12)
}

func TestBuildFilter(t *testing.T) {
	require.Equal(t, bson.M{}, BuildFilter(""))

	filter := BuildFilter("wal")
	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)
	for i, field := range []string{"item_name", "category", "last_seen_location"} {
		pattern, ok := or[i][field].(primitive.Regex)
		require.True(t, ok, field)
		require.Equal(t, "^wal", pattern.Pattern)
		require.Equal(t, "i", pattern.Options)
	}

	// metacharacters must not leak into the pattern
	escaped := BuildFilter("c++ (black)")
	pattern := escaped["$or"].([]bson.M)[0]["item_name"].(primitive.Regex)
	require.Equal(t, "^"+`c\+\+ \(black\)`, pattern.Pattern)
}

func TestMergeReportsExhaustsBothSides(t *testing.T) {
	a := []models.Report{
		report(6, baseTime.Add(3*time.Minute), models.StatusLost, "A", "Misc", "Somewhere nearby"),
		report(2, baseTime, models.StatusLost, "B", "Misc", "Somewhere nearby"),
	}
	b := []models.Report{
		report(5, baseTime.Add(2*time.Minute), models.StatusFound, "C", "Misc", "Somewhere nearby"),
	}

	merged := mergeReports(a, b)
	require.Len(t, merged, 3)
	require.Equal(t, oid(6), merged[0].ID)
	require.Equal(t, oid(5), merged[1].ID)
	require.Equal(t, oid(2), merged[2].ID)

	require.Empty(t, mergeReports(nil, nil))
}
