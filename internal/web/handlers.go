// Package web serves the passenger form and a small JSON API over the
// prediction service.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/godilite/airsat-server/internal/features"
	"github.com/godilite/airsat-server/internal/model"
	"github.com/godilite/airsat-server/internal/service"
	"go.uber.org/zap"
)

const (
	PageTitle    = "Airline Passenger Satisfaction Prediction App"
	ContactPhone = "+1 (555) 123-4567"
	ContactEmail = "support@airsatisfactionapp.com"

	requestTimeout = 10 * time.Second
	maxBodyBytes   = 64 << 10
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// PredictionService is what the web layer needs from the service package.
type PredictionService interface {
	Models() []string
	Predict(ctx context.Context, modelName string, in features.RawInput) (service.PredictionResult, error)
	Dashboard(ctx context.Context) (service.Dashboard, error)
	History(ctx context.Context, limit int) (service.History, error)
}

type Handlers struct {
	predictor PredictionService
	logger    *zap.Logger
}

func NewHandlers(predictor PredictionService, logger *zap.Logger) *Handlers {
	if predictor == nil {
		panic("nil PredictionService provided to NewHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{predictor: predictor, logger: logger.Named("web-handler")}
}

// Routes returns the mux for every page and API endpoint.
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /predict", h.handlePredictForm)
	mux.HandleFunc("GET /api/models", h.handleModels)
	mux.HandleFunc("POST /api/predict", h.handlePredictJSON)
	mux.HandleFunc("GET /api/predictions", h.handlePredictions)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	return mux
}

type pageData struct {
	Title         string
	Models        []string
	SelectedModel string
	ContactPhone  string
	ContactEmail  string
	Airlines      []service.Airline

	MinAge, MaxAge int
	Genders        []features.Gender
	CustomerTypes  []features.CustomerType
	TravelTypes    []features.TravelType
	Classes        []features.Class
	Input          features.RawInput

	Error       string
	Result      *service.PredictionResult
	TrendChart  Chart
	IssuesChart Chart
}

func (h *Handlers) newPage() *pageData {
	models := h.predictor.Models()
	selected := ""
	if len(models) > 0 {
		selected = models[0]
	}
	return &pageData{
		Title:         PageTitle,
		Models:        models,
		SelectedModel: selected,
		ContactPhone:  ContactPhone,
		ContactEmail:  ContactEmail,
		MinAge:        features.MinAge,
		MaxAge:        features.MaxAge,
		Genders:       features.Genders,
		CustomerTypes: features.CustomerTypes,
		TravelTypes:   features.TravelTypes,
		Classes:       features.Classes,
		Input:         features.DefaultInput(),
	}
}

// dashboard loads the reference data. A storage failure only costs the
// sidebar and charts, so it is logged rather than returned.
func (h *Handlers) dashboard(ctx context.Context) service.Dashboard {
	d, err := h.predictor.Dashboard(ctx)
	if err != nil {
		h.logger.Warn("dashboard unavailable", zap.Error(err))
	}
	return d
}

func (h *Handlers) render(w http.ResponseWriter, status int, page *pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		h.logger.Error("render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	page := h.newPage()
	page.Airlines = h.dashboard(ctx).TopAirlines
	h.render(w, http.StatusOK, page)
}

func formFields(r *http.Request) map[string]string {
	fields := make(map[string]string, len(r.PostForm))
	for name := range r.PostForm {
		fields[name] = r.PostForm.Get(name)
	}
	return fields
}

func (h *Handlers) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	page := h.newPage()
	d := h.dashboard(ctx)
	page.Airlines = d.TopAirlines

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		page.Error = "Could not read the form submission."
		h.render(w, http.StatusBadRequest, page)
		return
	}
	if m := r.PostForm.Get("model"); m != "" {
		page.SelectedModel = m
	}

	fields := formFields(r)
	in, err := features.Collect(fields)
	if err != nil {
		page.Input = features.Prefill(fields)
		page.Error = "Invalid input: " + err.Error()
		h.render(w, http.StatusBadRequest, page)
		return
	}
	page.Input = in

	res, err := h.predictor.Predict(ctx, page.SelectedModel, in)
	if err != nil {
		status, msg := errorStatus(err)
		page.Error = msg
		h.render(w, status, page)
		return
	}

	page.Result = &res
	page.TrendChart = TrendChart(d.SatisfactionTrend)
	page.IssuesChart = IssuesChart(d.CommonIssues)
	h.render(w, http.StatusOK, page)
}

// errorStatus maps service errors to an HTTP status and a message that is
// safe to show.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, features.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid input: " + err.Error()
	case errors.Is(err, model.ErrUnknownModel):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, model.ErrSchemaMismatch):
		return http.StatusInternalServerError, "The selected model rejected the feature row."
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "The prediction timed out."
	case errors.Is(err, service.ErrStorageFailure):
		return http.StatusInternalServerError, "database error"
	default:
		return http.StatusInternalServerError, "Prediction failed."
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("encode response", zap.Error(err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handlers) handleModels(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"models": h.predictor.Models()})
}

type predictRequest struct {
	Model string                     `json:"model"`
	Input map[string]json.RawMessage `json:"input"`
}

// inputFields flattens JSON input values into form strings. Strings pass
// through, numbers keep their literal text and null means absent.
func inputFields(raw map[string]json.RawMessage) (map[string]string, error) {
	fields := make(map[string]string, len(raw))
	for name, msg := range raw {
		var v any
		dec := json.NewDecoder(bytes.NewReader(msg))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, &features.FieldError{Field: name, Value: string(msg), Reason: "not valid JSON"}
		}
		switch val := v.(type) {
		case nil:
		case string:
			fields[name] = val
		case json.Number:
			fields[name] = val.String()
		default:
			return nil, &features.FieldError{Field: name, Value: string(msg), Reason: "must be a string or number"}
		}
	}
	return fields, nil
}

type predictResponse struct {
	ID            string                 `json:"id"`
	Model         string                 `json:"model"`
	Class         int                    `json:"class"`
	Label         string                 `json:"label"`
	Satisfied     bool                   `json:"satisfied"`
	Probabilities []float64              `json:"probabilities"`
	Features      features.FeatureVector `json:"features"`
	Input         features.RawInput      `json:"input"`
	CreatedAt     time.Time              `json:"created_at"`
}

func (h *Handlers) handlePredictJSON(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req predictRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.Model == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "model is required"})
		return
	}

	fields, err := inputFields(req.Input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	in, err := features.Collect(fields)
	if err != nil {
		h.writeError(w, err)
		return
	}

	res, err := h.predictor.Predict(ctx, req.Model, in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, predictResponse{
		ID:            res.ID,
		Model:         string(res.Model),
		Class:         res.Class,
		Label:         res.Label,
		Satisfied:     res.Satisfied(),
		Probabilities: res.Probabilities,
		Features:      res.Features,
		Input:         res.Input,
		CreatedAt:     res.CreatedAt,
	})
}

type historyRecord struct {
	ID            string                 `json:"id"`
	Model         string                 `json:"model"`
	Class         int                    `json:"class"`
	Label         string                 `json:"label"`
	Probabilities []float64              `json:"probabilities"`
	Features      features.FeatureVector `json:"features"`
	CreatedAt     time.Time              `json:"created_at"`
}

func (h *Handlers) handlePredictions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	hist, err := h.predictor.History(ctx, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	records := make([]historyRecord, len(hist.Records))
	for i, rec := range hist.Records {
		records[i] = historyRecord(rec)
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"predictions":  records,
		"label_counts": hist.LabelCounts,
	})
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "models": len(h.predictor.Models())})
}
