package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sethgrid/catflip/internal/catalog"
	"github.com/sethgrid/catflip/internal/game"
	"github.com/sethgrid/catflip/internal/wellbeing"
)

const (
	DefaultTickInterval = 100 * time.Millisecond
	DefaultPushInterval = time.Second
)

type Options struct {
	// NewSession is called once per websocket connection.
	NewSession   func() *game.Session
	Catalog      *catalog.Catalog
	TickInterval time.Duration
	PushInterval time.Duration
	Wellbeing    wellbeing.ComputationMode
}

// Handler serves the websocket game endpoint and its supporting HTTP routes.
type Handler struct {
	opts    Options
	log     *zap.Logger
	metrics *Metrics

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHandler(opts Options, logger *zap.Logger, metrics *Metrics) *Handler {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.PushInterval <= 0 {
		opts.PushInterval = DefaultPushInterval
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.NewSession == nil {
		cat := opts.Catalog
		opts.NewSession = func() *game.Session { return game.New(cat, game.WithLogger(logger)) }
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		opts:    opts,
		log:     logger.With(zap.String("component", "bridge")),
		metrics: metrics,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newStructuredLogger(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Get("/catalog", h.handleCatalog)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	r.Get("/ws", h.serveWS)
	return r
}

// Close ends every open session. Hijacked websocket connections are not
// covered by http.Server.Shutdown.
func (h *Handler) Close() {
	h.cancel()
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, h.opts.Catalog)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	session := h.opts.NewSession()
	c := newClient(conn, session, h)
	c.log.Info("session opened", zap.String("pet", session.Pet().Name))

	h.metrics.connections.Inc()
	defer h.metrics.connections.Dec()

	ctx, cancel := context.WithCancel(h.ctx)
	done := make(chan struct{})

	go c.writePump()
	go func() {
		defer close(done)
		c.run(ctx)
	}()
	c.readPump(ctx)
	cancel()
	<-done

	c.log.Info("session closed", zap.Int("money", session.Game().Money))
}

func newStructuredLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Debug("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Int64("duration_ms", time.Since(start).Milliseconds()),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

type Server struct {
	srv     *http.Server
	handler *Handler
	log     *zap.Logger
}

func NewServer(addr string, h *Handler, logger *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           h.Routes(),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		handler: h,
		log:     logger,
	}
}

func (s *Server) Run(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	s.log.Info("starting http server", zap.String("addr", ln.Addr().String()))

	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	s.handler.Close()
	return s.srv.Shutdown(ctx)
}
