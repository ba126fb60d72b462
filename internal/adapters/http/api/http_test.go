package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/wellguard/internal/adapters/http/api"
	"github.com/okian/wellguard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHealth(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := http.NewServeMux()
		api.NewServer().Register(context.Background(), mux)

		Convey("When GET /healthz is requested", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then it should return ok JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["status"], ShouldEqual, "ok")
			})
		})

		Convey("When POST /healthz is requested", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/healthz", nil))

			Convey("Then it should be rejected with a JSON error", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Allow"), ShouldEqual, "GET, HEAD")
				So(w.Body.String(), ShouldContainSubstring, "method_not_allowed")
			})
		})

		Convey("When /metrics is scraped after a health check", func() {
			mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Convey("Then the wellguard series should be exposed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "wellguard_analyzer_http_requests_total")
				So(w.Body.String(), ShouldContainSubstring, `endpoint="healthz"`)
			})
		})
	})

	Convey("Given a server with its own gatherer", t, func() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "private_total", Help: "test"}))
		mux := http.NewServeMux()
		api.NewServer(api.WithGatherer(reg)).Register(context.Background(), mux)

		Convey("When /metrics is scraped", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Convey("Then only that registry should be served", func() {
				So(w.Body.String(), ShouldContainSubstring, "private_total")
				So(w.Body.String(), ShouldNotContainSubstring, "wellguard_analyzer")
			})
		})
	})

	Convey("Given a nil mux", t, func() {
		Convey("Then Register should panic", func() {
			So(func() { api.NewServer().Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("Given a handler behind the request id middleware", t, func() {
		So(logger.InitWriter(io.Discard), ShouldBeNil)
		var seen string
		h := api.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = logger.RequestID(r.Context())
		}))

		Convey("When the request carries no id", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then a UUID should be generated and echoed", func() {
				id := w.Header().Get(api.RequestIDHeader)
				_, err := uuid.Parse(id)
				So(err, ShouldBeNil)
				So(seen, ShouldEqual, id)
			})
		})

		Convey("When the request carries an id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it should be kept", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
				So(seen, ShouldEqual, "abc-123")
			})
		})

		Convey("When the supplied id is too long", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(api.RequestIDHeader, strings.Repeat("x", 500))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it should be replaced", func() {
				So(len(w.Header().Get(api.RequestIDHeader)), ShouldEqual, 36)
			})
		})
	})
}

func TestMetricsMiddleware(t *testing.T) {
	Convey("Given a handler that fails", t, func() {
		h := api.MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusTeapot)
		}, "teapot")

		Convey("When it is called", func() {
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/teapot", nil))

			Convey("Then the status should pass through and be counted", func() {
				So(w.Code, ShouldEqual, http.StatusTeapot)
				scrape := httptest.NewRecorder()
				mux := http.NewServeMux()
				api.NewServer().Register(context.Background(), mux)
				mux.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
				So(scrape.Body.String(), ShouldContainSubstring, `wellguard_analyzer_http_errors_total{endpoint="teapot",error_type="client_error",method="GET"}`)
			})
		})
	})
}
