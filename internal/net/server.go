package net

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/mdns"
	"go.uber.org/zap"

	"SmartDesk/internal/logging"
)

// Server serves the prediction feed at /feed.
type Server struct {
	Hub  *Hub
	http *http.Server
	ln   net.Listener
	mdns *mdns.Server
}

func NewServer() *Server {
	hub := NewHub()
	mux := http.NewServeMux()
	mux.Handle("/feed", hub)
	return &Server{
		Hub: hub,
		http: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start listens on port (0 picks a free one) and, when announce is set,
// advertises the feed over mDNS. It does not block.
func (s *Server) Start(port int, announce bool, session string) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to start feed server on port %d: %w", port, err)
	}
	s.ln = ln

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Error("feed server stopped", zap.Error(err))
		}
	}()

	actual := s.Port()
	logging.Logger.Info("feed server listening",
		zap.String("url", fmt.Sprintf("ws://%s:%d/feed", GetOutgoingIP(), actual)))

	if announce {
		m, err := advertise(actual, session)
		if err != nil {
			// Viewers can still connect by address.
			logging.Logger.Warn("mDNS advertisement failed", zap.Error(err))
		} else {
			s.mdns = m
		}
	}
	return nil
}

// Port reports the bound port, or 0 before Start.
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *Server) Close() error {
	if s.mdns != nil {
		_ = s.mdns.Shutdown()
	}
	s.Hub.Close()
	return s.http.Close()
}
