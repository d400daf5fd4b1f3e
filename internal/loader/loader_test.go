package loader

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-dashboard/internal/dashboard"
	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

const testDate domain.DateKey = "20250728"

var errUnavailable = errors.New("connection refused")

// memSource serves documents from a map. Paths in fail return that error.
type memSource struct {
	mu    sync.Mutex
	docs  map[string]string
	fail  map[string]error
	calls map[string]int
}

func newMemSource() *memSource {
	return &memSource{docs: make(map[string]string), fail: make(map[string]error), calls: make(map[string]int)}
}

func (s *memSource) Fetch(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[path]++
	if err := s.fail[path]; err != nil {
		return nil, err
	}
	doc, ok := s.docs[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return []byte(doc), nil
}

func (s *memSource) count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func snapshotSource() *memSource {
	snap := domain.Snapshot{Date: testDate}
	src := newMemSource()
	src.docs[snap.RegionKey()] = `{"1":"Alaska","3":"Southwest","10":"Northern Rockies"}`
	src.docs[snap.Region("3")] = `[{"Incident Name":"Dragon Bravo","Total Acres":"1,250","%":"40","Total PPL":"UNK","Chge in PPL":"-12","Crw":"3","Eng":"5","Heli":"1","$$ CTD":"$10,000"}]`
	src.docs[snap.Region("1")] = `[]`
	src.docs[snap.Region("10")] = `[{"Incident Name":"Oak","Total Acres":"80","%":"100"}]`
	src.docs[snap.RegionSummaries()] = `{"Southwest  ": ["Dry and windy.", "", "Critical fire weather Tuesday."]}`
	src.docs[snap.FireSummary()] = `[{"GACC":"Northwest","Cumulative Acres":"312,004","Incidents":"14","Total Personnel":"4,210","Change in Personnel":"+120","Crews":"61","Engines":"140","Helicopters":"22"}]`
	src.docs[snap.DailySummary()] = `{"header":["National Preparedness Level 4"],"summary":"IMSR Map\nNIMOs committed: 1\nok\nLarge fires: 12"}`
	src.docs[snap.PredictiveSummary()] = "  Above normal significant fire potential.\n"
	return src
}

func newTestLoader(src Source) *Loader {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(src, Options{DateKey: testDate}, logger, observability.NewMetricsForTesting())
}

func TestSnapshotUsesFixedKey(t *testing.T) {
	l := newTestLoader(newMemSource())
	assert.Equal(t, testDate, l.Snapshot().Date)
}

func TestSnapshotDerivesKeyFromClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 7, 29, 3, 0, 0, 0, time.UTC))

	denver, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := New(newMemSource(), Options{Location: denver, Clock: clock}, logger, observability.NewMetricsForTesting())
	assert.Equal(t, domain.DateKey("20250728"), l.Snapshot().Date, "still the 28th in Denver")

	l = New(newMemSource(), Options{Clock: clock}, logger, observability.NewMetricsForTesting())
	assert.Equal(t, domain.DateKey("20250729"), l.Snapshot().Date)
}

func TestRegionView(t *testing.T) {
	l := newTestLoader(snapshotSource())
	v := l.Region(context.Background(), "3")

	assert.Equal(t, "Southwest", v.Name)
	require.True(t, v.Incidents.OK())
	require.Len(t, v.Incidents.Value, 1)
	assert.Equal(t, 1250.0, v.Incidents.Value[0].TotalAcres)

	require.NotNil(t, v.Summary)
	require.NoError(t, v.Summary.Err)
	assert.Equal(t, "Dry and windy.\n\nCritical fire weather Tuesday.", v.Summary.Value)
}

// A failed region key degrades to placeholder names and skips the summary.
func TestRegionViewWithoutNames(t *testing.T) {
	src := snapshotSource()
	src.fail[domain.Snapshot{Date: testDate}.RegionKey()] = errUnavailable
	l := newTestLoader(src)

	v := l.Region(context.Background(), "3")
	assert.Equal(t, "Region 3", v.Name)
	assert.Nil(t, v.Summary)
	assert.True(t, v.Incidents.OK(), "incidents load independently")
	assert.Zero(t, src.count(domain.Snapshot{Date: testDate}.RegionSummaries()))
}

func TestRegionViewMalformedNames(t *testing.T) {
	src := snapshotSource()
	src.docs[domain.Snapshot{Date: testDate}.RegionKey()] = `["not","a","map"]`
	v := newTestLoader(src).Region(context.Background(), "3")
	assert.Equal(t, "Region 3", v.Name)
	assert.Nil(t, v.Summary)
}

func TestRegionViewMissingSummaryEntry(t *testing.T) {
	v := newTestLoader(snapshotSource()).Region(context.Background(), "10")
	require.NotNil(t, v.Summary)
	assert.ErrorIs(t, v.Summary.Err, ErrNoSummary)
}

func TestRegionViewFailedSummaryFetch(t *testing.T) {
	src := snapshotSource()
	src.fail[domain.Snapshot{Date: testDate}.RegionSummaries()] = errUnavailable
	v := newTestLoader(src).Region(context.Background(), "3")

	require.NotNil(t, v.Summary)
	assert.ErrorIs(t, v.Summary.Err, errUnavailable)
	assert.NotErrorIs(t, v.Summary.Err, ErrNoSummary)
	assert.True(t, v.Incidents.OK())
}

func TestRegionViewIncidentErrors(t *testing.T) {
	src := snapshotSource()
	snap := domain.Snapshot{Date: testDate}
	src.docs[snap.Region("3")] = `{"Incident Name":"Dragon Bravo"}`
	v := newTestLoader(src).Region(context.Background(), "3")
	assert.ErrorIs(t, v.Incidents.Err, domain.ErrMalformed)
	assert.Equal(t, "Southwest", v.Name, "names load independently")

	v = newTestLoader(src).Region(context.Background(), "7")
	assert.ErrorIs(t, v.Incidents.Err, domain.ErrNotFound)
}

func TestRegionViewEmptyTable(t *testing.T) {
	v := newTestLoader(snapshotSource()).Region(context.Background(), "1")
	require.True(t, v.Incidents.OK())
	assert.Empty(t, v.Incidents.Value)
}

func TestNationalView(t *testing.T) {
	v := newTestLoader(snapshotSource()).National(context.Background())

	require.True(t, v.Incidents.OK())
	assert.Equal(t, "Northwest", v.Incidents.Value[0].Name)
	require.True(t, v.Predictive.OK())
	assert.Equal(t, "Above normal significant fire potential.", v.Predictive.Value)
	assert.Equal(t, 3, v.Names.Len())
}

func TestNationalViewPredictiveFailureIsIndependent(t *testing.T) {
	src := snapshotSource()
	src.fail[domain.Snapshot{Date: testDate}.PredictiveSummary()] = errUnavailable
	v := newTestLoader(src).National(context.Background())

	assert.ErrorIs(t, v.Predictive.Err, errUnavailable)
	assert.True(t, v.Incidents.OK())
}

func TestOverviewView(t *testing.T) {
	v := newTestLoader(snapshotSource()).Overview(context.Background())

	require.True(t, v.Daily.OK())
	assert.Equal(t, []string{"National Preparedness Level 4"}, v.Daily.Value.Header)
	assert.Equal(t, "NIMOs committed: 1\n\nLarge fires: 12", v.Daily.Value.Summary)
	require.True(t, v.National.OK())

	require.Len(t, v.Regions, 3)
	ids := []string{v.Regions[0].ID, v.Regions[1].ID, v.Regions[2].ID}
	assert.Equal(t, []string{"1", "3", "10"}, ids, "numeric id order")
	assert.Equal(t, "Northern Rockies", v.Regions[2].Name)
	assert.True(t, v.Regions[1].Incidents.OK())
}

func TestOverviewViewWithoutNames(t *testing.T) {
	src := snapshotSource()
	src.fail[domain.Snapshot{Date: testDate}.RegionKey()] = errUnavailable
	src.fail[domain.Snapshot{Date: testDate}.DailySummary()] = errUnavailable

	v := newTestLoader(src).Overview(context.Background())
	assert.Empty(t, v.Regions)
	assert.ErrorIs(t, v.Daily.Err, errUnavailable)
	assert.True(t, v.National.OK())
}

func TestLoadView(t *testing.T) {
	l := newTestLoader(snapshotSource())

	v, err := l.LoadView(context.Background(), dashboard.RegionRoute("3"))
	require.NoError(t, err)
	assert.Equal(t, dashboard.KindRegional, v.Kind)
	assert.Equal(t, "Southwest", v.Title)
	assert.Len(t, v.Incidents, 1)

	v, err = l.LoadView(context.Background(), dashboard.NationalRoute)
	require.NoError(t, err)
	assert.Equal(t, dashboard.KindNational, v.Kind)
	assert.Equal(t, NationalTitle, v.Title)

	_, err = l.LoadView(context.Background(), dashboard.RegionRoute("9"))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckReadiness(t *testing.T) {
	require.NoError(t, newTestLoader(snapshotSource()).CheckReadiness(context.Background()))

	err := newTestLoader(newMemSource()).CheckReadiness(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), string(testDate))
}

func TestPrewarmFetchesEveryDocument(t *testing.T) {
	src := snapshotSource()
	snap := domain.Snapshot{Date: testDate}
	require.NoError(t, newTestLoader(src).Prewarm(context.Background(), snap))

	for _, path := range []string{
		snap.RegionKey(), snap.FireSummary(), snap.DailySummary(), snap.RegionSummaries(),
		snap.Region("1"), snap.Region("3"), snap.Region("10"),
	} {
		assert.Equal(t, 1, src.count(path), path)
	}
}

func TestPrewarmRequiresRegionKey(t *testing.T) {
	err := newTestLoader(newMemSource()).Prewarm(context.Background(), domain.Snapshot{Date: testDate})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRaw(t *testing.T) {
	l := newTestLoader(snapshotSource())
	data, err := l.Raw(context.Background(), domain.Snapshot{Date: testDate}.PredictiveSummary())
	require.NoError(t, err)
	assert.Contains(t, string(data), "Above normal")
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", outcome(nil))
	assert.Equal(t, "not_found", outcome(domain.ErrNotFound))
	assert.Equal(t, "malformed", outcome(domain.ErrMalformed))
	assert.Equal(t, "error", outcome(errUnavailable))
}
