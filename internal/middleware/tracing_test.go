package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ripple/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func newTracedApp(t *testing.T) *fiber.App {
	t.Helper()

	// A real provider so spans carry non-zero ids; nothing is exported.
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	prev := observability.Tracer
	observability.Tracer = tp.Tracer("test")
	t.Cleanup(func() { observability.Tracer = prev })
	otel.SetTextMapPropagator(propagation.TraceContext{})

	app := fiber.New()
	app.Use(Tracing())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"trace_id": c.Locals("traceID")})
	})
	return app
}

func TestTracing_SetsTraceIDHeader(t *testing.T) {
	app := newTracedApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	traceID := resp.Header.Get("X-Trace-ID")
	require.Len(t, traceID, 32)
	assert.NotEqual(t, "00000000000000000000000000000000", traceID)
}

func TestTracing_PropagatesIncomingContext(t *testing.T) {
	app := newTracedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	// The request span joins the caller's trace
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", resp.Header.Get("X-Trace-ID"))
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName: "test",
		Enabled:     false,
	})
	require.NoError(t, err)
	assert.NoError(t, shutdown(t.Context()))
}
