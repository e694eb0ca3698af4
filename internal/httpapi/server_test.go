package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"notifyd/internal/engine"
	"notifyd/pkg/types"
)

type mockService struct {
	topics     map[string]engine.TopicInfo[float64]
	status     types.StatusResponse
	ready      bool
	publishErr error
	published  []float64
}

func newMockService() *mockService {
	return &mockService{topics: map[string]engine.TopicInfo[float64]{}, ready: true}
}

func (m *mockService) CreateTopic(name string, v float64) error {
	if _, ok := m.topics[name]; ok {
		return engine.ErrDuplicateTopic(name)
	}
	m.topics[name] = engine.TopicInfo[float64]{Name: name, Value: v, UpdatedAt: time.Unix(1700000000, 0)}
	return nil
}

func (m *mockService) Publish(name string, v float64) (engine.Notification[float64], error) {
	if m.publishErr != nil {
		return engine.Notification[float64]{}, m.publishErr
	}
	t, ok := m.topics[name]
	if !ok {
		return engine.Notification[float64]{}, engine.ErrUnknownTopic(name)
	}
	t.Seq++
	t.Value = v
	m.topics[name] = t
	m.published = append(m.published, v)
	return engine.Notification[float64]{Topic: name, Value: v, Seq: t.Seq, PublishedAt: time.Unix(0, 42)}, nil
}

func (m *mockService) RemoveTopic(name string) error {
	if _, ok := m.topics[name]; !ok {
		return engine.ErrUnknownTopic(name)
	}
	delete(m.topics, name)
	return nil
}

func (m *mockService) Topic(name string) (engine.TopicInfo[float64], error) {
	t, ok := m.topics[name]
	if !ok {
		return t, engine.ErrUnknownTopic(name)
	}
	return t, nil
}

func (m *mockService) Topics() []engine.TopicInfo[float64] {
	out := make([]engine.TopicInfo[float64], 0, len(m.topics))
	for _, t := range m.topics {
		out = append(out, t)
	}
	return out
}

func (m *mockService) Status() types.StatusResponse { return m.status }
func (m *mockService) Ready() bool                  { return m.ready }

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.ErrorResponse {
	t.Helper()
	var er types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v body=%s", err, w.Body.String())
	}
	return er
}

func TestCreateAndListTopics(t *testing.T) {
	svc := newMockService()
	r := NewMux(svc)

	w := do(t, r, http.MethodPost, "/topics", `{"name":"AAPL","value":150}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var ts types.TopicStatus
	if err := json.Unmarshal(w.Body.Bytes(), &ts); err != nil {
		t.Fatalf("json: %v", err)
	}
	if ts.Name != "AAPL" || ts.Value != 150.0 || ts.Seq != 0 {
		t.Fatalf("unexpected topic %+v", ts)
	}

	w = do(t, r, http.MethodGet, "/topics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	var list types.TopicsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(list.Topics) != 1 || list.Topics[0].Name != "AAPL" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestCreateTopic_Duplicate(t *testing.T) {
	svc := newMockService()
	_ = svc.CreateTopic("AAPL", 150)
	w := do(t, NewMux(svc), http.MethodPost, "/topics", `{"name":"AAPL","value":1}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d", w.Code)
	}
	if er := decodeError(t, w); er.Code != http.StatusConflict || !strings.Contains(er.Error, "AAPL") {
		t.Fatalf("unexpected error body %+v", er)
	}
}

func TestPublish(t *testing.T) {
	svc := newMockService()
	_ = svc.CreateTopic("AAPL", 150)
	r := NewMux(svc)

	w := do(t, r, http.MethodPost, "/topics/AAPL/publish", `{"value":145}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var pr types.PublishResponse
	if err := json.Unmarshal(w.Body.Bytes(), &pr); err != nil {
		t.Fatalf("json: %v", err)
	}
	if pr.Topic != "AAPL" || pr.Value != 145 || pr.Seq != 1 || pr.PublishedUnixNano != 42 {
		t.Fatalf("unexpected response %+v", pr)
	}
}

func TestPublish_UnknownTopic(t *testing.T) {
	svc := newMockService()
	w := do(t, NewMux(svc), http.MethodPost, "/topics/GOOG/publish", `{"value":1}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if er := decodeError(t, w); er.Error != "unknown topic: GOOG" {
		t.Fatalf("unexpected error %+v", er)
	}
	if len(svc.topics) != 0 {
		t.Fatalf("registry must be unchanged")
	}
}

func TestPublish_BadRequests(t *testing.T) {
	svc := newMockService()
	_ = svc.CreateTopic("AAPL", 150)
	r := NewMux(svc)

	if w := do(t, r, http.MethodPost, "/topics/AAPL/publish", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing value: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/topics/AAPL/publish", `{"value":`); w.Code != http.StatusBadRequest {
		t.Fatalf("broken json: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/topics/AAPL/publish", `{"value":1,"extra":true}`); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: status=%d", w.Code)
	}
	req := httptest.NewRequest(http.MethodPost, "/topics/AAPL/publish", strings.NewReader(`{"value":1}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("missing content type: status=%d", w.Code)
	}
	if len(svc.published) != 0 {
		t.Fatalf("nothing should have been published: %v", svc.published)
	}
}

func TestPublish_BodyLimit(t *testing.T) {
	SetMaxBodyBytes(16)
	t.Cleanup(func() { SetMaxBodyBytes(0) })
	svc := newMockService()
	_ = svc.CreateTopic("AAPL", 150)
	body := `{"value":` + strings.Repeat(" ", 64) + `1}`
	if w := do(t, NewMux(svc), http.MethodPost, "/topics/AAPL/publish", body); w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestGetAndRemoveTopic(t *testing.T) {
	svc := newMockService()
	_ = svc.CreateTopic("temperature", 20)
	r := NewMux(svc)

	if w := do(t, r, http.MethodGet, "/topics/temperature", ""); w.Code != http.StatusOK {
		t.Fatalf("get: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/topics/temperature", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/topics/temperature", ""); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/topics/temperature", ""); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status=%d", w.Code)
	}
}

func TestStatusHandler(t *testing.T) {
	svc := newMockService()
	svc.status = types.StatusResponse{State: "running", PublishedTotal: 10}
	w := do(t, NewMux(svc), http.MethodGet, "/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.State != "running" || body.PublishedTotal != 10 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHealthAndReadiness(t *testing.T) {
	svc := newMockService()
	r := NewMux(svc)
	if w := do(t, r, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodGet, "/readyz", ""); w.Code != http.StatusOK {
		t.Fatalf("readyz: %d", w.Code)
	}
	svc.ready = false
	w := do(t, r, http.MethodGet, "/readyz", "")
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), "closed") {
		t.Fatalf("readyz not ready: %d %q", w.Code, w.Body.String())
	}
}

func TestReadyz_ShuttingDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	SetBaseContext(ctx)
	t.Cleanup(func() { SetBaseContext(nil) })
	cancel()
	w := do(t, NewMux(newMockService()), http.MethodGet, "/readyz", "")
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), "shutting down") {
		t.Fatalf("readyz during shutdown: %d %q", w.Code, w.Body.String())
	}
}

func TestSecurityHeaderAndRequestID(t *testing.T) {
	w := do(t, NewMux(newMockService()), http.MethodGet, "/healthz", "")
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options=%q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	SetCORSOptions(true, []string{"http://localhost:3000"}, []string{"GET", "POST"}, []string{"Content-Type"})
	t.Cleanup(func() { SetCORSOptions(false, nil, nil, nil) })
	r := NewMux(newMockService())

	req := httptest.NewRequest(http.MethodOptions, "/topics", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("Access-Control-Allow-Origin=%q", got)
	}
}

func TestRealEngine_Roundtrip(t *testing.T) {
	e := engine.New[float64]()
	t.Cleanup(func() { _ = e.Close(context.Background()) })
	r := NewMux(e)

	if w := do(t, r, http.MethodPost, "/topics", `{"name":"AAPL","value":150}`); w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodPost, "/topics", `{"name":"bad name","value":1}`); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid name: %d", w.Code)
	}
	w := do(t, r, http.MethodPost, "/topics/AAPL/publish", `{"value":145}`)
	if w.Code != http.StatusOK {
		t.Fatalf("publish: %d %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"seq":1`)) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	_ = e.Close(context.Background())
	if w := do(t, r, http.MethodPost, "/topics/AAPL/publish", `{"value":1}`); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("publish after close: %d", w.Code)
	}
}
