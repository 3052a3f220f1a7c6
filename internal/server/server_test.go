package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rezonia/invoice-client/internal/server"
)

const invoice1001 = `{"numero_factura":"1001","fecha_emision":"2025-08-15","empresa":{"nombre":"Distribuidora La Esperanza S.A.S"},"cliente":{"nombre":"Supermercado Los Andes"},"detalle":[{"producto":"X","categoria":"A","cantidad":2,"precio_unitario":50}],"subtotal":100,"impuesto":19,"total":119}`

// newUpstream fakes the invoice API; only invoice 1001 exists
func newUpstream(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	calls := new(atomic.Int32)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/obtener-factura/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/api/obtener-factura/1001" {
			http.Error(w, `{"error":"Factura no encontrada"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(invoice1001))
	})
	mux.HandleFunc("/api/generar-pdf/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/api/generar-pdf/1001" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, calls
}

func newTestServer(t *testing.T, logger *zap.Logger) (*server.Server, *atomic.Int32) {
	t.Helper()
	upstream, calls := newUpstream(t)
	config := &server.Config{
		Address: ":8080",
		APIURL:  upstream.URL,
		Debug:   true,
		Logger:  logger,
	}
	return server.NewServer(config), calls
}

func serve(srv *server.Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := serve(srv, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	var response server.HealthResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "invoice-client", response.Service)
	assert.NotEmpty(t, response.Time)
}

func TestIndex_Empty(t *testing.T) {
	srv, calls := newTestServer(t, nil)

	w := serve(srv, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, `id="facturaForm"`)
	assert.Contains(t, body, "Generate Invoice")
	assert.NotContains(t, body, `id="facturaPreview"`)
	assert.NotContains(t, body, `role="alert"`)
	assert.Zero(t, calls.Load())
}

func TestIndex_Lookup(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := serve(srv, "/?numero=1001")
	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `id="facturaPreview"`)
	assert.Contains(t, body, "Invoice generated successfully")
	assert.Contains(t, body, "alert-success")
	assert.Contains(t, body, `<td class="text-end">$100</td>`)
	assert.Contains(t, body, `id="previewTotal">$119<`)
	assert.Contains(t, body, `href="/api/generar-pdf/1001"`)
	assert.Contains(t, body, `download="factura_1001.pdf"`)
	assert.Contains(t, body, "Generate Invoice")
}

func TestIndex_BlankNumber(t *testing.T) {
	srv, calls := newTestServer(t, nil)

	w := serve(srv, "/?numero=+++")
	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Please enter an invoice number")
	assert.Contains(t, body, "alert-warning")
	assert.NotContains(t, body, `id="facturaPreview"`)
	assert.Zero(t, calls.Load())
}

func TestIndex_UnknownNumber(t *testing.T) {
	srv, calls := newTestServer(t, nil)

	w := serve(srv, "/?numero=9999")
	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Error generating the invoice. Please try again.")
	assert.Contains(t, body, "alert-danger")
	assert.Contains(t, body, `value="9999"`)
	assert.NotContains(t, body, `id="facturaPreview"`)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLookupRelay(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := serve(srv, "/api/obtener-factura/1001")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, invoice1001, w.Body.String())
}

func TestLookupRelay_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := serve(srv, "/api/obtener-factura/9999")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var response server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "invoice lookup failed", response.Error)
	assert.Equal(t, http.StatusNotFound, response.UpstreamStatus)
}

func TestPDFRelay(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := serve(srv, "/api/generar-pdf/1001")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=factura_1001.pdf", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4 fake", w.Body.String())
}

func TestPDFRelay_UpstreamFailure(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := serve(srv, "/api/generar-pdf/2002")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))

	var response server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, http.StatusInternalServerError, response.UpstreamStatus)
}

func TestUpstreamUnreachable(t *testing.T) {
	srv := server.NewServer(&server.Config{APIURL: "http://127.0.0.1:1"})

	w := serve(srv, "/api/obtener-factura/1001")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var response server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Zero(t, response.UpstreamStatus)
}

func TestXLSXExport(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := serve(srv, "/api/exportar-excel/1001")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=factura_1001.xlsx", w.Header().Get("Content-Disposition"))
	// xlsx is a zip archive
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestXLSXExport_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := serve(srv, "/api/exportar-excel/9999")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestInfo_InvalidPDF(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := serve(srv, "/api/info/1001")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "upstream returned an invalid PDF", response.Error)
	assert.NotEmpty(t, response.Details)
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	srv, _ := newTestServer(t, zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "req-123")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-Id"))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/health", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "req-123", fields["request_id"])
}

func TestRequestIDReachesUpstream(t *testing.T) {
	seen := make(chan string, 1)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(invoice1001))
	}))
	defer upstream.Close()

	srv := server.NewServer(&server.Config{APIURL: upstream.URL})

	req := httptest.NewRequest(http.MethodGet, "/api/obtener-factura/1001", nil)
	req.Header.Set("X-Request-Id", "req-456")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-456", <-seen)
}

func TestRequestLogging_GeneratesID(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := serve(srv, "/health")
	assert.Len(t, w.Header().Get("X-Request-Id"), 36)
}
