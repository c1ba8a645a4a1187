// Package model contains domain records passed between pipeline layers.
package model

import "strings"

// Route is immutable reference data about a climb, loaded once per run
// and never mutated by the pipeline. Grade carries the source site's
// difficulty label; Stars its informational popularity rating.
type Route struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Grade   string   `json:"rating"`
	Pitches int      `json:"pitches,omitempty"`
	Types   []string `json:"types,omitempty"`
	Area    string   `json:"area,omitempty"`
	Stars   float64  `json:"stars,omitempty"`
}

// User identifies the climber on a tick. Some ticks carry none; those
// cannot be rated.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tick is one attempt by one climber on one route.
//
// Date is the source site's comma-delimited timestamp string; the part
// before the first comma is the calendar date used for batching.
type Tick struct {
	User      *User  `json:"user,omitempty"`
	RouteID   int64  `json:"routeId"`
	Style     string `json:"style"`     // ascent mode: Lead, TR, Follow, ...
	LeadStyle string `json:"leadStyle"` // Onsight, Flash, Redpoint, Fell/Hung, ...
	Grade     string `json:"rating"`    // difficulty label inherited from the route
	Date      string `json:"date"`
	Pitches   int    `json:"pitches,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// DateToken returns the calendar-date portion of the tick timestamp.
func (t Tick) DateToken() string {
	if i := strings.IndexByte(t.Date, ','); i >= 0 {
		return t.Date[:i]
	}
	return t.Date
}

// ClimberRating is the reported rating record for one climber.
type ClimberRating struct {
	ID       int64   `json:"id"`
	UserName string  `json:"userName,omitempty"`
	Rating   int     `json:"rating"`
	RD       int     `json:"rd"`
	Vol      float64 `json:"vol"`
}

// RouteRating is the reported rating record for one route. RouteInfo
// is nil when the route id never appeared in the reference data.
type RouteRating struct {
	ID        int64   `json:"id"`
	Rating    int     `json:"rating"`
	RD        int     `json:"rd"`
	Vol       float64 `json:"vol"`
	RouteInfo *Route  `json:"routeInfo,omitempty"`
}
