package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type Option func(*Options)

type Options struct {
	host         string
	port         int
	listener     net.Listener
	logger       *zap.Logger
	handler      http.Handler
	middlewares  []Middleware
	readTimeout  time.Duration
	writeTimeout time.Duration
	idleTimeout  time.Duration
}

// WithPort sets the TCP port. Port 0 picks a free port.
func WithPort(port int) Option {
	return func(o *Options) {
		o.port = port
	}
}

func WithHost(host string) Option {
	return func(o *Options) {
		o.host = host
	}
}

// WithListener serves on an existing listener; host and port are ignored.
func WithListener(lis net.Listener) Option {
	return func(o *Options) {
		o.listener = lis
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

func WithHandler(h http.Handler) Option {
	return func(o *Options) {
		o.handler = h
	}
}

// WithMiddleware appends middlewares inside the built-in request ID,
// recovery and logging layers.
func WithMiddleware(m ...Middleware) Option {
	return func(o *Options) {
		o.middlewares = append(o.middlewares, m...)
	}
}

func WithTimeouts(read, write, idle time.Duration) Option {
	return func(o *Options) {
		o.readTimeout = read
		o.writeTimeout = write
		o.idleTimeout = idle
	}
}

type Server struct {
	httpServer *http.Server
	lis        net.Listener
	logger     *zap.Logger
	started    atomic.Bool
}

// New creates an HTTP server using the builder options. The listener is
// opened immediately so Addr is valid before Start.
func New(opts ...Option) (*Server, error) {
	options := &Options{
		port:         8080,
		logger:       zap.NewNop(),
		readTimeout:  15 * time.Second,
		writeTimeout: 30 * time.Second,
		idleTimeout:  120 * time.Second,
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.handler == nil {
		return nil, errors.New("http handler is required")
	}

	logger := options.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http-server")

	lis := options.listener
	if lis == nil {
		if options.port < 0 || options.port > 65535 {
			return nil, fmt.Errorf("invalid port %d: must be between 0 and 65535", options.port)
		}
		addr := net.JoinHostPort(options.host, fmt.Sprint(options.port))
		var err error
		lis, err = net.Listen("tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
		}
	}

	// Logging wraps Recovery so the 500 written for a panic is still logged.
	chain := append([]Middleware{RequestID, Logging(logger), Recovery(logger)}, options.middlewares...)

	return &Server{
		httpServer: &http.Server{
			Handler:           Chain(chain...)(options.handler),
			ReadTimeout:       options.readTimeout,
			ReadHeaderTimeout: options.readTimeout,
			WriteTimeout:      options.writeTimeout,
			IdleTimeout:       options.idleTimeout,
			ErrorLog:          zap.NewStdLog(logger),
		},
		lis:    lis,
		logger: logger,
	}, nil
}

// Start serves in a goroutine. Errors other than a normal close are sent on
// the returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	s.started.Store(true)
	s.logger.Info("HTTP server starting", zap.String("addr", s.lis.Addr().String()))

	go func() {
		defer close(errCh)
		if err := s.httpServer.Serve(s.lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", zap.Error(err))
			errCh <- err
		}
	}()

	return errCh
}

// Shutdown drains in-flight requests until ctx expires, then closes. A
// server that was never started only releases its listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")

	if !s.started.Load() {
		return closeListener(s.lis)
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("forced shutdown due to timeout", zap.Error(err))
		_ = s.httpServer.Close()
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

// Addr returns the server's listening address.
func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}

func closeListener(lis net.Listener) error {
	if err := lis.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("close listener: %w", err)
	}
	return nil
}
