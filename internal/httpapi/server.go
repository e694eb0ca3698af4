package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notifyd/internal/engine"
	"notifyd/pkg/types"
)

// NewMux builds the admin router for svc.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, request log, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	h := &handlers{svc: svc}
	r.Route("/topics", func(r chi.Router) {
		r.Get("/", h.listTopics)
		r.Post("/", h.createTopic)
		r.Get("/{name}", h.getTopic)
		r.Delete("/{name}", h.removeTopic)
		r.Post("/{name}/publish", h.publish)
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if serverBaseCtx.Err() != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("shutting down"))
			return
		}
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("closed"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

type handlers struct{ svc Service }

// listTopics godoc
// @Summary      List topics
// @Tags         topics
// @Produce      json
// @Success      200  {object}  types.TopicsResponse
// @Router       /topics [get]
func (h *handlers) listTopics(w http.ResponseWriter, r *http.Request) {
	infos := h.svc.Topics()
	resp := types.TopicsResponse{Topics: make([]types.TopicStatus, 0, len(infos))}
	for _, t := range infos {
		resp.Topics = append(resp.Topics, engine.TopicStatus(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

// createTopic godoc
// @Summary      Create a topic
// @Tags         topics
// @Accept       json
// @Produce      json
// @Param        body  body      types.CreateTopicRequest  true  "topic"
// @Success      201   {object}  types.TopicStatus
// @Failure      409   {object}  types.ErrorResponse
// @Failure      422   {object}  types.ErrorResponse
// @Router       /topics [post]
func (h *handlers) createTopic(w http.ResponseWriter, r *http.Request) {
	var req types.CreateTopicRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.CreateTopic(req.Name, req.Value); err != nil {
		writeError(w, err)
		return
	}
	info, err := h.svc.Topic(req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, engine.TopicStatus(info))
}

// getTopic godoc
// @Summary      Get one topic
// @Tags         topics
// @Produce      json
// @Param        name  path      string  true  "topic name"
// @Success      200   {object}  types.TopicStatus
// @Failure      404   {object}  types.ErrorResponse
// @Router       /topics/{name} [get]
func (h *handlers) getTopic(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Topic(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, engine.TopicStatus(info))
}

// removeTopic godoc
// @Summary      Remove a topic
// @Tags         topics
// @Param        name  path  string  true  "topic name"
// @Success      204
// @Failure      404   {object}  types.ErrorResponse
// @Router       /topics/{name} [delete]
func (h *handlers) removeTopic(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveTopic(chi.URLParam(r, "name")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// publish godoc
// @Summary      Publish a value
// @Description  Stores the value, assigns the next sequence number and notifies subscribers asynchronously.
// @Tags         topics
// @Accept       json
// @Produce      json
// @Param        name  path      string                true  "topic name"
// @Param        body  body      types.PublishRequest  true  "value"
// @Success      200   {object}  types.PublishResponse
// @Failure      404   {object}  types.ErrorResponse
// @Failure      422   {object}  types.ErrorResponse
// @Router       /topics/{name}/publish [post]
func (h *handlers) publish(w http.ResponseWriter, r *http.Request) {
	var req types.PublishRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Value == nil {
		writeJSONError(w, http.StatusBadRequest, "value is required")
		return
	}
	n, err := h.svc.Publish(chi.URLParam(r, "name"), *req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.PublishResponse{
		Topic:             n.Topic,
		Value:             n.Value,
		Seq:               n.Seq,
		PublishedUnixNano: n.PublishedAt.UnixNano(),
	})
}

// decodeJSON enforces the content type and body limit, then decodes into v.
// It writes the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		// Oversized bodies also land here; report 400 without size details.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger().Error().Err(err).Msg("encode response")
	}
}
