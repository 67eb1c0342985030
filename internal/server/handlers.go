package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/mindcalm/internal/analytics"
	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/graph"
	"github.com/julianstephens/mindcalm/internal/logger"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/report"
	"github.com/julianstephens/mindcalm/internal/storage"
	"github.com/julianstephens/mindcalm/internal/tracker"
)

const (
	maxBodyBytes      = 1 << 20
	defaultGraphSteps = 300
	maxGraphSteps     = 2000
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps tracker and storage errors onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tracker.ErrUnknownKey), errors.Is(err, tracker.ErrNotFound), errors.Is(err, storage.ErrKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, tracker.ErrInvalidInput), errors.Is(err, tracker.ErrRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": constants.Version,
		"ai":      s.ai.Enabled(),
	})
}

func (s *Server) listState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := map[string]json.RawMessage{}
	for _, key := range constants.AllKeys {
		v, err := s.tracker.Raw(key)
		if errors.Is(err, storage.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		docs[key] = v
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	s.mu.Lock()
	v, err := s.tracker.Raw(key)
	s.mu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(v)
}

func (s *Server) putState(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	s.mu.Lock()
	err = s.tracker.SetRaw(key, bytes.TrimSpace(body))
	s.mu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteState(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	s.mu.Lock()
	err := s.tracker.DeleteRaw(key)
	s.mu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	d := s.tracker.Dashboard()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, d)
}

type analyticsResponse struct {
	Range        models.TimeRange      `json:"range"`
	Trend        []analytics.TrendRow  `json:"trend"`
	Distortions  []analytics.Count     `json:"distortions"`
	Radar        []analytics.RadarAxis `json:"radar"`
	AvgReduction float64               `json:"avgReduction"`
	GAD7         []models.GAD7Result   `json:"gad7"`
}

// window resolves the ?range= query parameter, defaulting to 30 days.
func (s *Server) window(w http.ResponseWriter, r *http.Request) (analytics.Window, bool) {
	rng := models.Range30d
	if q := r.URL.Query().Get("range"); q != "" {
		parsed, err := models.ParseTimeRange(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return analytics.Window{}, false
		}
		rng = parsed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Window(rng), true
}

func (s *Server) analytics(w http.ResponseWriter, r *http.Request) {
	win, ok := s.window(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analyticsResponse{
		Range:        win.Range,
		Trend:        analytics.BuildTrend(win),
		Distortions:  analytics.DistortionStats(win.Thoughts),
		Radar:        analytics.Radar(win),
		AvgReduction: analytics.AverageReduction(win.Thoughts),
		GAD7:         win.GAD7,
	})
}

// graph returns the knowledge graph after ?steps= rounds of layout.
func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	steps := defaultGraphSteps
	if q := r.URL.Query().Get("steps"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 || n > maxGraphSteps {
			writeError(w, http.StatusBadRequest, "steps must be between 0 and "+strconv.Itoa(maxGraphSteps))
			return
		}
		steps = n
	}

	s.mu.Lock()
	g := s.tracker.KnowledgeGraph()
	s.mu.Unlock()

	layout := graph.NewLayout(g, rand.New(rand.NewPCG(1, 2)))
	if _, err := layout.Run(r.Context(), steps); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, layout.Graph)
}

func (s *Server) reportPDF(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rep := s.tracker.ClinicianReport()
	s.mu.Unlock()

	if r.URL.Query().Get("summary") == "true" {
		rep.Summary = s.ai.ProgressReport(r.Context(), rep.Stats)
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, rep); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="mindcalm-report.pdf"`)
	w.Write(buf.Bytes())
}

type thoughtRequest struct {
	Situation string `json:"situation"`
	Thought   string `json:"thought"`
	Emotion   string `json:"emotion"`
}

func (s *Server) aiThought(w http.ResponseWriter, r *http.Request) {
	var req thoughtRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := s.ai.AnalyzeThoughtRecord(r.Context(), req.Situation, req.Thought, req.Emotion)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type textResponse struct {
	Text string `json:"text"`
}

func (s *Server) aiEvidence(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Thought string `json:"thought"`
	}
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, textResponse{s.ai.AnalyzeEvidence(r.Context(), req.Thought)})
}

func (s *Server) aiMedication(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	writeJSON(w, http.StatusOK, textResponse{s.ai.MedicationInfo(r.Context(), req.Name)})
}

// aiInteractions checks a new medication against the tracked ones unless the
// request names its own list.
func (s *Server) aiInteractions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Medication string   `json:"medication"`
		Existing   []string `json:"existing"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Medication == "" {
		writeError(w, http.StatusBadRequest, "medication is required")
		return
	}
	if req.Existing == nil {
		s.mu.Lock()
		for _, m := range s.tracker.Medications() {
			req.Existing = append(req.Existing, m.Name)
		}
		s.mu.Unlock()
	}
	writeJSON(w, http.StatusOK, textResponse{s.ai.DrugInteractions(r.Context(), req.Medication, req.Existing)})
}

func (s *Server) aiCoping(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Anxiety  int      `json:"anxiety"`
		Symptoms []string `json:"symptoms"`
		Notes    string   `json:"notes"`
	}
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, textResponse{s.ai.CopingStrategy(r.Context(), req.Anxiety, req.Symptoms, req.Notes)})
}

func (s *Server) aiProgress(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := s.tracker.ReportStats()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, textResponse{s.ai.ProgressReport(r.Context(), stats)})
}

// aiWorkout generates a plan and, with ?save=true, replaces the stored one.
func (s *Server) aiWorkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Level       string   `json:"level"`
		Equipment   []string `json:"equipment"`
		DaysPerWeek int      `json:"daysPerWeek"`
	}
	if !decode(w, r, &req) {
		return
	}
	plan := s.ai.WorkoutPlan(r.Context(), assist.WorkoutRequest{
		Level:       req.Level,
		Equipment:   req.Equipment,
		DaysPerWeek: req.DaysPerWeek,
	})

	if r.URL.Query().Get("save") == "true" && len(plan) > 0 {
		s.mu.Lock()
		saved, err := s.tracker.ReplaceWorkouts(plan)
		s.mu.Unlock()
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		plan = saved
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) aiInsights(w http.ResponseWriter, r *http.Request) {
	win, ok := s.window(w, r)
	if !ok {
		return
	}
	summary, ready := analytics.InsightSummary(win)
	if !ready {
		writeError(w, http.StatusUnprocessableEntity, "not enough check-ins or lifestyle logs in this range")
		return
	}
	writeJSON(w, http.StatusOK, s.ai.DataInsights(r.Context(), summary))
}

func (s *Server) aiChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string               `json:"message"`
		History []models.ChatMessage `json:"history"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	writeJSON(w, http.StatusOK, textResponse{s.ai.Chat(r.Context(), req.Message, req.History)})
}
