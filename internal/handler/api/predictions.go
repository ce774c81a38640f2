package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"EstatePulse/internal/domain/models"
	domrepo "EstatePulse/internal/domain/repository"
	"EstatePulse/internal/mapview"
	"EstatePulse/internal/render"
	"EstatePulse/internal/service/ratelimit"
	"EstatePulse/internal/service/ws"
	"EstatePulse/internal/usecase"
	"EstatePulse/pkg/config"
	xhttp "EstatePulse/pkg/http"
	xlogger "EstatePulse/pkg/logger"
	"EstatePulse/pkg/util"
)

// PredictionResponse is the POST /api/predict payload: the raw result
// plus the presentation-ready summary.
type PredictionResponse struct {
	Result  *models.PredictionResult `json:"result"`
	Summary render.Summary           `json:"summary"`
}

// PredictionHandler wires the prediction pipeline to the HTTP surface.
type PredictionHandler struct {
	predictor *usecase.Predictor
	locations *usecase.LocationLoader
	renderer  *render.Renderer
	view      *mapview.View
	history   domrepo.HistoryStore // nil when history is disabled
	hub       *ws.Hub
	rl        *ratelimit.Limiter
	cfg       *config.Config
	logger    *xlogger.Logger
}

func NewPredictionHandler(
	predictor *usecase.Predictor,
	locations *usecase.LocationLoader,
	renderer *render.Renderer,
	view *mapview.View,
	history domrepo.HistoryStore,
	hub *ws.Hub,
	cfg *config.Config,
	logger *xlogger.Logger,
) *PredictionHandler {
	return &PredictionHandler{
		predictor: predictor,
		locations: locations,
		renderer:  renderer,
		view:      view,
		history:   history,
		hub:       hub,
		rl:        ratelimit.New(),
		cfg:       cfg,
		logger:    logger,
	}
}

func (h *PredictionHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/predict", h.Predict)
	g.GET("/locations", h.Locations)
	g.GET("/map", h.Map)
	g.POST("/map/focus", h.Focus)
	g.GET("/history", h.History)

	e.GET("/healthz", h.Health)
	e.GET("/ws/updates", h.Updates)
}

// Predict runs a prediction and returns it with the rendered summary.
// The response is 200 even when the model backend is down; Source tells
// the caller a mock estimate was substituted.
func (h *PredictionHandler) Predict(c echo.Context) error {
	if h.cfg.RateLimit.Enabled {
		key := c.RealIP() + ":predict"
		if !h.rl.Allow(key, h.cfg.RateLimit.Capacity, h.cfg.RateLimit.RefillPerSec) {
			h.logger.Warn("predict rate limited", xlogger.String("remote", c.RealIP()))
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many prediction requests"))
		}
	}

	req := &models.PredictionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.predictor.Predict(c.Request().Context(), req)
	summary := h.renderer.Render(res)
	h.hub.Broadcast(PredictionResponse{Result: res, Summary: summary})

	return xhttp.SuccessResponse(c, PredictionResponse{Result: res, Summary: summary})
}

// Locations serves the autocomplete list. Never fails.
func (h *PredictionHandler) Locations(c echo.Context) error {
	locations := h.locations.Load(c.Request().Context())
	return xhttp.ListResponse(c, locations, int64(len(locations)))
}

// Map returns the current map view snapshot.
func (h *PredictionHandler) Map(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.view.Snapshot())
}

// Focus centers the map on a comparable marker, addressed by index or
// by coordinates.
func (h *PredictionHandler) Focus(c echo.Context) error {
	req := &models.FocusRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	var (
		marker mapview.Marker
		ok     bool
	)
	switch {
	case req.Index != nil:
		marker, ok = h.view.FocusIndex(*req.Index)
	case req.Latitude != nil && req.Longitude != nil:
		marker, ok = h.view.FocusAt(*req.Latitude, *req.Longitude)
	default:
		return xhttp.BadRequestResponse(c, "index or latitude/longitude required")
	}
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no marker matches the requested position"))
	}

	return xhttp.SuccessResponse(c, map[string]interface{}{
		"marker": marker,
		"map":    h.view.Snapshot(),
	})
}

// History lists recent predictions from the history store.
func (h *PredictionHandler) History(c echo.Context) error {
	if h.history == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("prediction history is not enabled"))
	}

	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from := util.ParseTimeDefault(req.From, time.Time{})
	to := util.ParseTimeDefault(req.To, time.Time{})

	rows, err := h.history.Recent(c.Request().Context(), req.Location, from, to, req.Limit)
	if err != nil {
		h.logger.Error("history query failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("history unavailable"))
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// Health reports liveness plus optional dependency state.
func (h *PredictionHandler) Health(c echo.Context) error {
	status := map[string]interface{}{
		"status":     "ok",
		"ws_clients": h.hub.ClientCount(),
	}
	if h.history != nil {
		if err := h.history.Health(c.Request().Context()); err != nil {
			status["history"] = "unavailable"
		} else {
			status["history"] = "ok"
		}
	}
	return xhttp.SuccessResponse(c, status)
}

// Updates upgrades to a websocket that receives every new prediction.
func (h *PredictionHandler) Updates(c echo.Context) error {
	return h.hub.Serve(c.Response(), c.Request())
}
