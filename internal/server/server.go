package server

import (
	"context"
	"log"
	"net/http"

	"github.com/soar/PadMouse/internal/hub"
)

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	page        []byte
	addr        string
	httpServer  *http.Server
}

// New prepares the monitor server. The embedded page is minified once here.
func New(h *hub.Hub, b *hub.Broadcaster, addr string) (*Server, error) {
	page, err := minifyPage(monitorPage)
	if err != nil {
		return nil, err
	}
	return &Server{
		hub:         h,
		broadcaster: b,
		page:        page,
		addr:        addr,
	}, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster))
	mux.HandleFunc("/", handlePage(s.page))
	return mux
}

func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.routes(),
	}

	log.Printf("Monitor listening on http://%s", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		log.Println("Shutting down monitor server...")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
