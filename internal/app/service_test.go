package app_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/pitchsix/cragrank/internal/adapters/ingest"
	app "github.com/pitchsix/cragrank/internal/app"
	"github.com/pitchsix/cragrank/internal/domain/model"
	"github.com/pitchsix/cragrank/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithLevelString("error")); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// harness wires a Service around temp input/output files.
type harness struct {
	climberOut string
	routeOut   string
	svc        *app.Service
}

func newHarness(t *testing.T, routes []model.Route, ticks []model.Tick, opts ...app.Option) *harness {
	t.Helper()
	dir := t.TempDir()
	routesPath := filepath.Join(dir, "routes.jsonl")
	ticksPath := filepath.Join(dir, "ticks.jsonl")
	if err := ingest.WriteNDJSON(routesPath, routes); err != nil {
		t.Fatal(err)
	}
	if err := ingest.WriteNDJSON(ticksPath, ticks); err != nil {
		t.Fatal(err)
	}

	h := &harness{
		climberOut: filepath.Join(dir, "climbers.json"),
		routeOut:   filepath.Join(dir, "routes-rated.json"),
	}
	all := append([]app.Option{
		app.WithInputs(routesPath, ticksPath),
		app.WithOutputs(h.climberOut, h.routeOut),
	}, opts...)
	h.svc = app.New(all...)
	return h
}

func (h *harness) climbers(t *testing.T) []model.ClimberRating {
	t.Helper()
	raw, err := os.ReadFile(h.climberOut)
	if err != nil {
		t.Fatal(err)
	}
	var out []model.ClimberRating
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	return out
}

func (h *harness) routes(t *testing.T) []model.RouteRating {
	t.Helper()
	raw, err := os.ReadFile(h.routeOut)
	if err != nil {
		t.Fatal(err)
	}
	var out []model.RouteRating
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	return out
}

func leadTick(userID int64, name string, routeID int64, leadStyle, date string) model.Tick {
	return model.Tick{
		User:      &model.User{ID: userID, Name: name},
		RouteID:   routeID,
		Style:     "Lead",
		LeadStyle: leadStyle,
		Date:      date,
	}
}

func TestRunSingleOnsight(t *testing.T) {
	Convey("Given one Onsight as the only event in the log", t, func() {
		routes := []model.Route{{ID: 100, Name: "Moonlight", Grade: "5.11a"}}
		ticks := []model.Tick{leadTick(1, "Alice", 100, "Onsight", "2023-03-01,10:00")}
		h := newHarness(t, routes, ticks)

		Convey("When running the pipeline", func() {
			So(h.svc.Run(context.Background()), ShouldBeNil)
			climbers := h.climbers(t)
			rated := h.routes(t)

			Convey("Then the climber lands above default and the route below", func() {
				So(climbers, ShouldHaveLength, 1)
				So(rated, ShouldHaveLength, 1)
				So(climbers[0].Rating, ShouldBeGreaterThan, 1500)
				So(rated[0].Rating, ShouldBeLessThan, 1500)
			})

			Convey("Then both deviations tighten from the default", func() {
				So(climbers[0].RD, ShouldBeLessThan, 350)
				So(rated[0].RD, ShouldBeLessThan, 350)
			})

			Convey("Then names and metadata are joined", func() {
				So(climbers[0].UserName, ShouldEqual, "Alice")
				So(rated[0].RouteInfo, ShouldNotBeNil)
				So(rated[0].RouteInfo.Name, ShouldEqual, "Moonlight")
			})
		})
	})
}

func TestRunSameDayVersusSplitDays(t *testing.T) {
	Convey("Given opposite outcomes for one climber on two routes", t, func() {
		routes := []model.Route{{ID: 100, Grade: "5.10a"}, {ID: 101, Grade: "5.12a"}}

		sameDay := []model.Tick{
			leadTick(1, "Alice", 100, "Onsight", "2023-03-01,09:00"),
			leadTick(1, "Alice", 101, "Fell/Hung", "2023-03-01,15:00"),
		}
		splitDays := []model.Tick{
			leadTick(1, "Alice", 100, "Onsight", "2023-03-01,09:00"),
			leadTick(1, "Alice", 101, "Fell/Hung", "2023-03-02,15:00"),
		}

		Convey("When both logs run", func() {
			hSame := newHarness(t, routes, sameDay)
			hSplit := newHarness(t, routes, splitDays)
			So(hSame.svc.Run(context.Background()), ShouldBeNil)
			So(hSplit.svc.Run(context.Background()), ShouldBeNil)

			Convey("Then one mixed batch differs from two sequential batches", func() {
				same := hSame.climbers(t)[0]
				split := hSplit.climbers(t)[0]
				So(same.Vol, ShouldNotAlmostEqual, split.Vol, 1e-12)
				So(same.RD, ShouldNotEqual, split.RD)
			})
		})
	})
}

func TestRunUnratableStyle(t *testing.T) {
	Convey("Given a Pinkpoint tick alongside real events", t, func() {
		routes := []model.Route{{ID: 100, Grade: "5.10a"}, {ID: 200, Grade: "5.13a"}}
		ticks := []model.Tick{
			leadTick(1, "Alice", 100, "Onsight", "2023-03-01,10:00"),
			leadTick(2, "Bob", 200, "Pinkpoint", "2023-03-01,11:00"),
		}
		h := newHarness(t, routes, ticks)

		Convey("When running the pipeline", func() {
			So(h.svc.Run(context.Background()), ShouldBeNil)

			Convey("Then the Pinkpoint entities are never created", func() {
				climbers := h.climbers(t)
				rated := h.routes(t)
				So(climbers, ShouldHaveLength, 1)
				So(climbers[0].ID, ShouldEqual, 1)
				So(rated, ShouldHaveLength, 1)
				So(rated[0].ID, ShouldEqual, 100)
			})
		})
	})
}

func TestRunMetadataJoinOptional(t *testing.T) {
	Convey("Given a tick on a route missing from the reference data", t, func() {
		routes := []model.Route{} // empty reference set
		ticks := []model.Tick{leadTick(1, "Alice", 999, "Redpoint", "2023-03-01,10:00")}
		h := newHarness(t, routes, ticks)

		Convey("Then the route record is emitted without metadata", func() {
			So(h.svc.Run(context.Background()), ShouldBeNil)
			rated := h.routes(t)
			So(rated, ShouldHaveLength, 1)
			So(rated[0].RouteInfo, ShouldBeNil)
		})
	})
}

func TestRunSortingAndDeterminism(t *testing.T) {
	Convey("Given a multi-climber, multi-day log", t, func() {
		routes := []model.Route{
			{ID: 100, Grade: "5.10a"}, {ID: 101, Grade: "5.11a"}, {ID: 102, Grade: "5.12a"},
		}
		ticks := []model.Tick{
			leadTick(1, "Alice", 100, "Onsight", "2023-03-02,10:00"),
			leadTick(2, "Bob", 100, "Fell/Hung", "2023-03-01,10:00"),
			leadTick(3, "Cara", 101, "Redpoint", "2023-03-01,12:00"),
			leadTick(1, "Alice", 102, "Flash", "2023-03-03,09:00"),
			leadTick(2, "Bob", 102, "Fell/Hung", "2023-03-03,10:00"),
		}
		h := newHarness(t, routes, ticks)

		Convey("When running the pipeline twice", func() {
			So(h.svc.Run(context.Background()), ShouldBeNil)
			first, err := os.ReadFile(h.climberOut)
			So(err, ShouldBeNil)
			firstRoutes, err := os.ReadFile(h.routeOut)
			So(err, ShouldBeNil)

			So(h.svc.Run(context.Background()), ShouldBeNil)
			second, err := os.ReadFile(h.climberOut)
			So(err, ShouldBeNil)
			secondRoutes, err := os.ReadFile(h.routeOut)
			So(err, ShouldBeNil)

			Convey("Then outputs are byte-identical", func() {
				So(string(second), ShouldEqual, string(first))
				So(string(secondRoutes), ShouldEqual, string(firstRoutes))
			})

			Convey("Then records are sorted by descending rating", func() {
				climbers := h.climbers(t)
				for i := 1; i < len(climbers); i++ {
					So(climbers[i].Rating, ShouldBeLessThanOrEqualTo, climbers[i-1].Rating)
				}
				rated := h.routes(t)
				for i := 1; i < len(rated); i++ {
					So(rated[i].Rating, ShouldBeLessThanOrEqualTo, rated[i-1].Rating)
				}
			})
		})
	})
}

func TestRunFallersOnly(t *testing.T) {
	Convey("Given one faller and one clean climber", t, func() {
		routes := []model.Route{{ID: 100, Grade: "5.10a"}, {ID: 101, Grade: "5.11a"}}
		ticks := []model.Tick{
			leadTick(1, "Alice", 100, "Onsight", "2023-03-01,10:00"),
			leadTick(2, "Bob", 100, "Fell/Hung", "2023-03-01,11:00"),
			leadTick(2, "Bob", 101, "Redpoint", "2023-03-02,10:00"),
		}
		h := newHarness(t, routes, ticks, app.WithFallersOnly(true))

		Convey("Then only the faller is rated", func() {
			So(h.svc.Run(context.Background()), ShouldBeNil)
			climbers := h.climbers(t)
			So(climbers, ShouldHaveLength, 1)
			So(climbers[0].ID, ShouldEqual, 2)
		})
	})
}

func TestRunMissingInput(t *testing.T) {
	Convey("Given a service pointed at a missing ticks file", t, func() {
		dir := t.TempDir()
		routesPath := filepath.Join(dir, "routes.jsonl")
		So(ingest.WriteNDJSON(routesPath, []model.Route{}), ShouldBeNil)

		svc := app.New(
			app.WithInputs(routesPath, filepath.Join(dir, "absent.jsonl")),
			app.WithOutputs(filepath.Join(dir, "c.json"), filepath.Join(dir, "r.json")),
		)

		Convey("Then the run aborts with an error", func() {
			So(svc.Run(context.Background()), ShouldNotBeNil)
		})
	})
}
