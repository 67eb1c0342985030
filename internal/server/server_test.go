package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/graph"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/storage/sqlite"
	"github.com/julianstephens/mindcalm/internal/tracker"
)

type fakeGenerator struct {
	reply   string
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ *genai.Schema) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, nil
}

var testNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.Local)

func setupServer(t *testing.T, gen assist.Generator) (*Server, *tracker.Tracker) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "mindcalm.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	tr := tracker.New(store, tracker.WithClock(func() time.Time { return testNow }))
	if err := tr.Load(); err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}
	return New(tr, assist.New(gen)), tr
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := setupServer(t, nil)
	rec := do(t, s, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["ai"] != false {
		t.Errorf("ai = %v, want false without a generator", body["ai"])
	}
}

func TestStateRoundTrip(t *testing.T) {
	s, tr := setupServer(t, nil)

	rec := do(t, s, http.MethodPut, "/api/state/theme", `"dark"`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT status = %d, want 204: %s", rec.Code, rec.Body)
	}
	if tr.Theme() != models.ThemeDark {
		t.Errorf("tracker theme = %q, want dark", tr.Theme())
	}

	rec = do(t, s, http.MethodGet, "/api/state/theme", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `"dark"` {
		t.Errorf("GET = %d %q, want 200 \"dark\"", rec.Code, rec.Body)
	}

	rec = do(t, s, http.MethodGet, "/api/state", "")
	var docs map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &docs); err != nil {
		t.Fatal(err)
	}
	if string(docs["theme"]) != `"dark"` {
		t.Errorf("listed theme = %s", docs["theme"])
	}

	rec = do(t, s, http.MethodDelete, "/api/state/theme", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", rec.Code)
	}
	if rec = do(t, s, http.MethodGet, "/api/state/theme", ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete = %d, want 404", rec.Code)
	}
}

func TestStateErrors(t *testing.T) {
	s, _ := setupServer(t, nil)
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown key", http.MethodGet, "/api/state/bogus", "", http.StatusNotFound},
		{"unknown key put", http.MethodPut, "/api/state/bogus", `[]`, http.StatusNotFound},
		{"invalid json", http.MethodPut, "/api/state/moods", `{not json`, http.StatusBadRequest},
		{"missing document", http.MethodGet, "/api/state/moods", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, s, tt.method, tt.path, tt.body); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestDashboard(t *testing.T) {
	s, tr := setupServer(t, nil)
	if _, err := tr.AddMood(models.MoodEntry{Score: 7, AnxietyScore: 4}); err != nil {
		t.Fatal(err)
	}

	rec := do(t, s, http.MethodGet, "/api/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var d struct {
		RecentMoods []models.MoodEntry `json:"recentMoods"`
		AvgAnxiety  float64            `json:"avgAnxiety"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatal(err)
	}
	if len(d.RecentMoods) != 1 || d.AvgAnxiety != 4 {
		t.Errorf("dashboard = %+v", d)
	}
}

func TestAnalyticsRange(t *testing.T) {
	s, _ := setupServer(t, nil)
	if rec := do(t, s, http.MethodGet, "/api/analytics?range=1y", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad range status = %d, want 400", rec.Code)
	}
	rec := do(t, s, http.MethodGet, "/api/analytics?range=7d", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Range string `json:"range"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Range != "7d" {
		t.Errorf("range = %q, want 7d", body.Range)
	}
}

func TestGraph(t *testing.T) {
	s, _ := setupServer(t, nil)
	if rec := do(t, s, http.MethodGet, "/api/graph?steps=-1", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("negative steps status = %d, want 400", rec.Code)
	}

	rec := do(t, s, http.MethodGet, "/api/graph?steps=10", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var g graph.Graph
	if err := json.Unmarshal(rec.Body.Bytes(), &g); err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) == 0 || g.Nodes[0].ID != "root" {
		t.Errorf("expected the root node first, got %+v", g.Nodes)
	}
}

func TestReportPDF(t *testing.T) {
	s, _ := setupServer(t, nil)
	rec := do(t, s, http.MethodGet, "/api/report.pdf", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF")
	}
}

func TestAIEndpoints(t *testing.T) {
	gen := &fakeGenerator{reply: "Try box breathing."}
	s, tr := setupServer(t, gen)
	if _, err := tr.AddMedication(models.Medication{Name: "Sertraline", Dosage: "50mg"}); err != nil {
		t.Fatal(err)
	}

	rec := do(t, s, http.MethodPost, "/api/ai/chat", `{"message":"I feel tense"}`)
	var got textResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(textResponse{Text: "Try box breathing."}, got); diff != "" {
		t.Errorf("chat mismatch (-want +got):\n%s", diff)
	}

	do(t, s, http.MethodPost, "/api/ai/interactions", `{"medication":"Ibuprofen"}`)
	if last := gen.prompts[len(gen.prompts)-1]; !strings.Contains(last, "Sertraline") {
		t.Errorf("interaction prompt should list tracked medications: %q", last)
	}

	if rec := do(t, s, http.MethodPost, "/api/ai/chat", `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty chat status = %d, want 400", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/ai/insights", ""); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("insights without data status = %d, want 422", rec.Code)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	s, _ := setupServer(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}
