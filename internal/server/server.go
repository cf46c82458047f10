package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
)

// published is one encoded snapshot together with its validators.
type published struct {
	body     []byte
	etag     string
	modified time.Time
}

// GridServer serves the latest calendar snapshot as JSON on localhost.
type GridServer struct {
	// Written from the UI goroutine, read by handlers without locking.
	current atomic.Pointer[published]
	Port    string
}

func NewGridServer(port string) *GridServer {
	return &GridServer{Port: port}
}

// Handler routes GET and HEAD to the snapshot. Other methods get a 405
// with an Allow header from the mux.
func (s *GridServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteSnapshot, s.serveSnapshot)
	return mux
}

// Start binds the port, serves until ctx is cancelled, then drains open
// connections. Bind failures are returned immediately.
func (s *GridServer) Start(ctx context.Context) error {
	if err := config.ValidatePort(s.Port); err != nil {
		return err
	}
	ln, err := net.Listen("tcp", net.JoinHostPort(config.LocalhostBindAddr, s.Port))
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
	defer func() { _ = ln.Close() }()

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	var shutdownErr error
	drained := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(drained)
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		sctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		shutdownErr = srv.Shutdown(sctx)
	})
	defer stop()

	slog.Info(config.MsgServerListen,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyPort, s.Port,
	)
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}

	<-drained
	if shutdownErr != nil {
		return fmt.Errorf("%s: %w", config.ErrServerShutdown, shutdownErr)
	}
	return nil
}

// Publish encodes snap and atomically replaces the served content.
func (s *GridServer) Publish(snap Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSnapshotEncode, err)
	}
	s.store(body)
	return nil
}

// store swaps in body unless it is identical to what is already served,
// in which case the modification time is kept.
func (s *GridServer) store(body []byte) {
	sum := sha256.Sum256(body)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(sum[:]))
	if cur := s.current.Load(); cur != nil && cur.etag == etag {
		return
	}

	s.current.Store(&published{body: body, etag: etag, modified: time.Now()})
	slog.Debug(config.MsgSnapshotUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(body),
		config.LogKeyETag, etag,
	)
}

// serveSnapshot leaves conditional requests and HEAD to http.ServeContent.
func (s *GridServer) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	p := s.current.Load()
	if p == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeJSON)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, p.etag)
	http.ServeContent(w, r, "", p.modified, bytes.NewReader(p.body))
}
