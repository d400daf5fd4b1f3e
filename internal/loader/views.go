package loader

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/wildfire-dashboard/internal/dashboard"
	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
)

// overviewConcurrency bounds concurrent region fetches for the overview.
const overviewConcurrency = 4

// NationalTitle is the board title of the national view.
const NationalTitle = "National Fire Summary"

// Section is one independently loaded part of a view.
type Section[T any] struct {
	Value T
	Err   error
}

// OK reports whether the section loaded.
func (s Section[T]) OK() bool { return s.Err == nil }

func sectionOf[T any](v T, err error) Section[T] {
	return Section[T]{Value: v, Err: err}
}

// RegionView is the data behind a region page.
type RegionView struct {
	Snapshot  domain.Snapshot
	ID        string
	Name      string
	Names     domain.RegionNames
	Incidents Section[[]domain.Incident]

	// Summary is nil when the region has no display name, since the
	// summaries document is keyed by name.
	Summary *Section[string]
}

// Region loads a region page. The region key is fetched before the summary
// lookup that depends on it; the incident table loads alongside both.
func (l *Loader) Region(ctx context.Context, id string) RegionView {
	snap := l.Snapshot()
	v := RegionView{Snapshot: snap, ID: id}

	var g errgroup.Group
	g.Go(func() error {
		v.Names = l.RegionNames(ctx, snap)
		v.Name = v.Names.Name(id)
		if !v.Names.Known(id) {
			return nil
		}
		s := sectionOf(l.RegionSummary(ctx, snap, v.Name))
		v.Summary = &s
		return nil
	})
	g.Go(func() error {
		v.Incidents = sectionOf(l.RegionIncidents(ctx, snap, id))
		return nil
	})
	_ = g.Wait()
	return v
}

// NationalView is the data behind the national page.
type NationalView struct {
	Snapshot   domain.Snapshot
	Names      domain.RegionNames
	Incidents  Section[[]domain.Incident]
	Predictive Section[string]
}

// National loads the national page.
func (l *Loader) National(ctx context.Context) NationalView {
	snap := l.Snapshot()
	v := NationalView{Snapshot: snap}

	var g errgroup.Group
	g.Go(func() error {
		v.Names = l.RegionNames(ctx, snap)
		return nil
	})
	g.Go(func() error {
		v.Incidents = sectionOf(l.NationalIncidents(ctx, snap))
		return nil
	})
	g.Go(func() error {
		v.Predictive = sectionOf(l.PredictiveSummary(ctx, snap))
		return nil
	})
	_ = g.Wait()
	return v
}

// RegionPanel is one region's acres panel on the overview.
type RegionPanel struct {
	ID        string
	Name      string
	Incidents Section[[]domain.Incident]
}

// OverviewView is the data behind the overview page.
type OverviewView struct {
	Snapshot domain.Snapshot
	Names    domain.RegionNames
	Daily    Section[domain.DailySummary]
	National Section[[]domain.Incident]
	Regions  []RegionPanel
}

// Overview loads the overview page: the daily summary, the national acres
// panel, and one panel per named region in ascending id order.
func (l *Loader) Overview(ctx context.Context) OverviewView {
	snap := l.Snapshot()
	v := OverviewView{Snapshot: snap}

	var g errgroup.Group
	g.Go(func() error {
		v.Daily = sectionOf(l.DailySummary(ctx, snap))
		return nil
	})
	g.Go(func() error {
		v.National = sectionOf(l.NationalIncidents(ctx, snap))
		return nil
	})
	g.Go(func() error {
		v.Names = l.RegionNames(ctx, snap)
		ids := v.Names.IDs()
		v.Regions = make([]RegionPanel, len(ids))

		var regions errgroup.Group
		regions.SetLimit(overviewConcurrency)
		for i, id := range ids {
			regions.Go(func() error {
				v.Regions[i] = RegionPanel{
					ID:        id,
					Name:      v.Names.Name(id),
					Incidents: sectionOf(l.RegionIncidents(ctx, snap, id)),
				}
				return nil
			})
		}
		return regions.Wait()
	})
	_ = g.Wait()
	return v
}

// LoadView loads the board data for a live session route.
func (l *Loader) LoadView(ctx context.Context, r dashboard.Route) (dashboard.View, error) {
	switch r.Kind {
	case dashboard.KindNational:
		incidents, err := l.NationalIncidents(ctx, l.Snapshot())
		if err != nil {
			return dashboard.View{}, err
		}
		return dashboard.View{Kind: dashboard.KindNational, Title: NationalTitle, Incidents: incidents}, nil

	case dashboard.KindRegional:
		snap := l.Snapshot()
		var (
			names     domain.RegionNames
			incidents []domain.Incident
			g         errgroup.Group
		)
		g.Go(func() error {
			names = l.RegionNames(ctx, snap)
			return nil
		})
		g.Go(func() error {
			var err error
			incidents, err = l.RegionIncidents(ctx, snap, r.RegionID)
			return err
		})
		if err := g.Wait(); err != nil {
			return dashboard.View{}, err
		}
		return dashboard.View{Kind: dashboard.KindRegional, Title: names.Name(r.RegionID), Incidents: incidents}, nil

	default:
		return dashboard.View{}, fmt.Errorf("%w: %v", dashboard.ErrInvalidRoute, r)
	}
}
