package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/pitchsix/cragrank/pkg/logger"
)

func TestInit(t *testing.T) {
	Convey("Given the default options", t, func() {
		Convey("Then Init succeeds and Get returns a logger", func() {
			var buf bytes.Buffer
			So(logger.Init(logger.WithOutput(&buf)), ShouldBeNil)
			So(logger.Get(), ShouldNotBeNil)
		})
	})

	Convey("Given an unknown level string", t, func() {
		Convey("Then Init fails", func() {
			err := logger.Init(logger.WithLevelString("loud"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown log level")
		})
	})

	Convey("Given an empty rotating-file path", t, func() {
		Convey("Then Init fails", func() {
			So(logger.Init(logger.WithRotatingFile("")), ShouldNotBeNil)
		})
	})
}

func TestLevelFiltering(t *testing.T) {
	Convey("Given a logger at warn level", t, func() {
		var buf bytes.Buffer
		So(logger.Init(
			logger.WithOutput(&buf),
			logger.WithLevelString("warn"),
		), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging below and at the threshold", func() {
			logger.Get().Info(ctx, "quiet")
			logger.Get().Warn(ctx, "loud", logger.Int("n", 3))

			Convey("Then only the warn record is emitted", func() {
				out := buf.String()
				So(out, ShouldNotContainSubstring, "quiet")
				So(out, ShouldContainSubstring, "loud")
				So(out, ShouldContainSubstring, "n=3")
			})
		})
	})
}

func TestJSONFormat(t *testing.T) {
	Convey("Given a JSON-format logger", t, func() {
		var buf bytes.Buffer
		So(logger.Init(
			logger.WithOutput(&buf),
			logger.WithJSONFormat(),
		), ShouldBeNil)

		Convey("When logging with fields", func() {
			logger.Get().Info(context.Background(), "hello",
				logger.String("who", "world"),
				logger.Float64("score", 0.8),
			)

			Convey("Then the record decodes as JSON with the fields", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "hello")
				So(rec["who"], ShouldEqual, "world")
				So(rec["score"], ShouldEqual, 0.8)
			})
		})
	})
}

func TestNamed(t *testing.T) {
	Convey("Given a named child logger", t, func() {
		var buf bytes.Buffer
		So(logger.Init(logger.WithOutput(&buf)), ShouldBeNil)

		Convey("When the child logs a field", func() {
			logger.Named("fetch").Info(context.Background(), "start",
				logger.Int64("userID", 9),
			)

			Convey("Then the field is grouped under the name", func() {
				So(buf.String(), ShouldContainSubstring, "fetch.userID=9")
			})
		})
	})
}

func TestParseLevelAliases(t *testing.T) {
	Convey("Given the accepted level spellings", t, func() {
		for _, level := range []string{"debug", "info", "WARN", "warning", "Error", ""} {
			Convey("Then "+strings.ToLower(level)+" is accepted", func() {
				So(logger.Init(logger.WithLevelString(level)), ShouldBeNil)
			})
		}
	})
}
