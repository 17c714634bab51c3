package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"strconv"

	"github.com/matst80/slask-storefront/pkg/common"
	"github.com/matst80/slask-storefront/pkg/page"
	"github.com/matst80/slask-storefront/pkg/selection"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/matst80/slask-storefront/pkg/view"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	pageViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_page_views_total",
		Help: "The total number of served page snapshots",
	})
	pageEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_events_total",
		Help: "The total number of handled page events by type",
	}, []string{"event"})
)

var errNotFound = errors.New("not found")

type StorefrontServer struct {
	Sessions  *SessionStore
	Tracking  types.Tracking
	FetchMode types.FetchMode
	Logger    *zap.Logger
}

func NewStorefrontServer(sessions *SessionStore, trk types.Tracking, mode types.FetchMode, logger *zap.Logger) *StorefrontServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorefrontServer{
		Sessions:  sessions,
		Tracking:  trk,
		FetchMode: mode,
		Logger:    logger,
	}
}

func (ws *StorefrontServer) track(fn func(trk types.Tracking)) {
	if ws.Tracking != nil {
		go fn(ws.Tracking)
	}
}

// mount starts the catalog fetch of a session the way the fetch mode asks
// for. The fetch outlives the request that triggered it.
func (ws *StorefrontServer) mount(r *http.Request, c *page.Controller) {
	ctx := context.WithoutCancel(r.Context())
	if ws.FetchMode == types.FetchClient {
		c.MountAsync(ctx)
		return
	}
	c.Mount(ctx)
}

// session returns the controller of the session with its load started, so
// an event arriving before the first page request still sees the catalog.
func (ws *StorefrontServer) session(r *http.Request, sessionId string) *page.Controller {
	c := ws.Sessions.Get(sessionId)
	ws.mount(r, c)
	return c
}

func (ws *StorefrontServer) Page(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	c := ws.session(r, sessionId)
	pageViews.Inc()
	snap := c.Snapshot()
	if snap.LoadState.IsTerminal() {
		w.Header().Set("Cache-Control", "private, max-age=0")
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
	return enc.Encode(snap)
}

type ProductsResponse struct {
	LoadState types.LoadPhase `json:"loadState"`
	SortKey   types.SortKey   `json:"sortKey"`
	Products  []page.Card     `json:"products"`
}

func (ws *StorefrontServer) Products(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	req := ProductsRequest{}
	if err := decodeQuery(r, &req); err != nil {
		return common.BadRequest(err)
	}
	c := ws.session(r, sessionId)
	if req.Sort != "" {
		ws.setSort(sessionId, c, req.Sort)
	}
	snap := c.Snapshot()
	return enc.Encode(ProductsResponse{
		LoadState: snap.LoadState,
		SortKey:   snap.SortKey,
		Products:  snap.Products,
	})
}

func (ws *StorefrontServer) setSort(sessionId string, c *page.Controller, value string) {
	key := c.SetSortKey(value)
	resultLen := len(c.Products())
	pageEvents.WithLabelValues("sort").Inc()
	ws.track(func(trk types.Tracking) {
		trk.TrackSort(sessionId, key, resultLen)
	})
}

func (ws *StorefrontServer) Sort(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	req := SortRequest{}
	if err := decodeQuery(r, &req); err != nil {
		return common.BadRequest(err)
	}
	c := ws.session(r, sessionId)
	ws.setSort(sessionId, c, req.Key)
	return enc.Encode(c.Snapshot())
}

func (ws *StorefrontServer) Filter(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	req := FilterRequest{}
	if err := decodeQuery(r, &req); err != nil {
		return common.BadRequest(err)
	}
	c := ws.session(r, sessionId)
	selected, err := c.ToggleFilterOption(req.Group, req.Option)
	if err != nil {
		if errors.Is(err, selection.ErrUnknownGroup) || errors.Is(err, selection.ErrUnknownOption) {
			return common.BadRequest(err)
		}
		return err
	}
	pageEvents.WithLabelValues("filter").Inc()
	ws.track(func(trk types.Tracking) {
		trk.TrackFilter(sessionId, req.Group, selected)
	})
	return enc.Encode(c.Snapshot())
}

func (ws *StorefrontServer) Customizable(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	c := ws.session(r, sessionId)
	c.ToggleCustomizable()
	pageEvents.WithLabelValues("customizable").Inc()
	return enc.Encode(c.Snapshot())
}

func (ws *StorefrontServer) View(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	req := ViewRequest{}
	if err := decodeQuery(r, &req); err != nil {
		return common.BadRequest(err)
	}
	c := ws.session(r, sessionId)
	name := view.Toggle(req.Name)
	var err error
	if req.Value != nil {
		err = c.SetView(name, *req.Value)
	} else {
		_, err = c.FlipView(name)
	}
	if err != nil {
		if errors.Is(err, view.ErrUnknownToggle) {
			return common.BadRequest(err)
		}
		return err
	}
	pageEvents.WithLabelValues("view").Inc()
	return enc.Encode(c.Snapshot())
}

func (ws *StorefrontServer) NavClick(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	c := ws.session(r, sessionId)
	c.ClickNavLink()
	pageEvents.WithLabelValues("nav").Inc()
	return enc.Encode(c.Snapshot())
}

func (ws *StorefrontServer) Wishlist(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.BadRequest(fmt.Errorf("invalid product id: %w", err))
	}
	productId := types.ProductId(id)
	c := ws.session(r, sessionId)
	wishlisted, err := c.ToggleWishlist(productId)
	if err != nil {
		if errors.Is(err, page.ErrUnknownProduct) {
			return &common.StatusError{Code: http.StatusNotFound, Err: fmt.Errorf("%w: %w", errNotFound, err)}
		}
		return err
	}
	pageEvents.WithLabelValues("wishlist").Inc()
	ws.track(func(trk types.Tracking) {
		trk.TrackWishlist(sessionId, productId, wishlisted)
	})
	return enc.Encode(c.Snapshot())
}

func (ws *StorefrontServer) TrackAction(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	var data types.TrackingAction
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		return common.BadRequest(fmt.Errorf("invalid tracking action: %w", err))
	}
	if data.Action == "" {
		return common.BadRequest(errors.New("tracking action is required"))
	}
	pageEvents.WithLabelValues("action").Inc()
	if ws.Tracking != nil {
		if err := ws.Tracking.TrackAction(sessionId, data); err != nil {
			ws.Logger.Warn("failed to track action", zap.String("action", data.Action), zap.Error(err))
		}
	}
	w.WriteHeader(http.StatusAccepted)
	return nil
}

func (ws *StorefrontServer) handle(fn func(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error) http.HandlerFunc {
	return common.JsonHandler(ws.Tracking, ws.Logger, fn)
}

// Handle returns the storefront api mux.
func (ws *StorefrontServer) Handle() *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("GET /api/page", ws.handle(ws.Page))
	srv.HandleFunc("GET /api/products", ws.handle(ws.Products))
	srv.HandleFunc("POST /api/sort", ws.handle(ws.Sort))
	srv.HandleFunc("POST /api/filter", ws.handle(ws.Filter))
	srv.HandleFunc("POST /api/customizable", ws.handle(ws.Customizable))
	srv.HandleFunc("POST /api/view", ws.handle(ws.View))
	srv.HandleFunc("POST /api/nav-click", ws.handle(ws.NavClick))
	srv.HandleFunc("POST /api/wishlist/{id}", ws.handle(ws.Wishlist))
	srv.HandleFunc("POST /api/track/action", ws.handle(ws.TrackAction))
	srv.HandleFunc("OPTIONS /api/", common.RespondToOptions)
	return srv
}

// DebugMux serves health, metrics and optionally pprof.
func DebugMux(enableProfiling bool) *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv.Handle("/metrics", promhttp.Handler())
	if enableProfiling {
		srv.HandleFunc("/debug/pprof/", pprof.Index)
		srv.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		srv.HandleFunc("/debug/pprof/profile", pprof.Profile)
		srv.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		srv.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return srv
}
