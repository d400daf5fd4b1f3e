package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
)

// ErrInvalidRoute is returned for paths that do not name a board view.
var ErrInvalidRoute = errors.New("invalid route")

// Route names a board view: the national summary or one region.
type Route struct {
	Kind     Kind
	RegionID string
}

// NationalRoute is the national summary view.
var NationalRoute = Route{Kind: KindNational}

// RegionRoute returns the view of one region.
func RegionRoute(id string) Route {
	return Route{Kind: KindRegional, RegionID: id}
}

// ParseRoute parses "/national" or "/region/{id}".
func ParseRoute(path string) (Route, error) {
	path = strings.TrimSuffix(path, "/")
	if path == "/national" {
		return NationalRoute, nil
	}
	if id, ok := strings.CutPrefix(path, "/region/"); ok {
		if !domain.ValidRegionID(id) {
			return Route{}, fmt.Errorf("%w: region id %q", ErrInvalidRoute, id)
		}
		return RegionRoute(id), nil
	}
	return Route{}, fmt.Errorf("%w: %q", ErrInvalidRoute, path)
}

// Path returns the page path of the route.
func (r Route) Path() string {
	if r.Kind == KindNational {
		return "/national"
	}
	return "/region/" + r.RegionID
}

func (r Route) String() string {
	return r.Path()
}
