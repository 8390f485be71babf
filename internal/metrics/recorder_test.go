package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecorder(t *testing.T) {
	Convey("Given a recorder on a custom registry", t, func() {
		registry := prometheus.NewRegistry()
		recorder := NewRecorder(WithRegistry(registry), WithNamespace("test"))

		Convey("When solves are observed", func() {
			recorder.ObserveSolve("feasible", 150*time.Millisecond, 120, 480)
			recorder.ObserveSolve("feasible", 20*time.Millisecond, 60, 200)
			recorder.ObserveSolve("infeasible", time.Second, 30, 90)

			Convey("Then outcomes are counted by status", func() {
				So(testutil.ToFloat64(recorder.solves.WithLabelValues("feasible")), ShouldEqual, 2)
				So(testutil.ToFloat64(recorder.solves.WithLabelValues("infeasible")), ShouldEqual, 1)
			})

			Convey("Then the model size reflects the last solve", func() {
				So(testutil.ToFloat64(recorder.modelVariables), ShouldEqual, 30)
				So(testutil.ToFloat64(recorder.modelClauses), ShouldEqual, 90)
			})

			Convey("Then every duration is observed", func() {
				expected := `
# HELP test_solves_total Solve attempts by outcome (optimal, feasible, infeasible, unknown, error)
# TYPE test_solves_total counter
test_solves_total{status="feasible"} 2
test_solves_total{status="infeasible"} 1
`
				So(testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_solves_total"), ShouldBeNil)
				So(testutil.CollectAndCount(recorder.solveDuration), ShouldEqual, 1)
			})
		})

		Convey("When meets are rejected", func() {
			recorder.ConfigurationError()
			recorder.ConfigurationError()

			Convey("Then they are counted", func() {
				So(testutil.ToFloat64(recorder.configurationErrors), ShouldEqual, 2)
			})
		})
	})

	Convey("Given no recorder", t, func() {
		var recorder *Recorder

		Convey("Then recording is a no-op", func() {
			So(func() {
				recorder.ObserveSolve("unknown", time.Second, 1, 1)
				recorder.ConfigurationError()
			}, ShouldNotPanic)
		})
	})
}
