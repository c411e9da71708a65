// Package preview serves the compatibility page over HTTP, rebuilding it from
// the fixture tree on every request.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/webcomponents/custom-elements-everywhere/internal/scorecard"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg     scorecard.Config
	log     io.Writer
	handler http.Handler
}

// NewServer builds the router. Output paths in cfg are ignored; log receives
// one line per request and may be nil.
func NewServer(cfg scorecard.Config, log io.Writer) *Server {
	s := &Server{cfg: cfg, log: log}
	router := mux.NewRouter()
	router.HandleFunc("/", s.servePage).Methods("GET", "HEAD")
	router.HandleFunc("/libraries/{key}.json", s.serveLibrary).Methods("GET")
	router.HandleFunc("/healthz", s.serveHealth).Methods("GET")
	s.handler = router
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	page, err := scorecard.Generate(s.cfg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method != "HEAD" {
		_, _ = w.Write(page.HTML)
	}
	s.logf("%s %s 200 %d libraries", r.Method, r.URL.Path, len(page.Libraries))
}

func (s *Server) serveLibrary(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	cat, _, err := scorecard.LoadCatalog(s.cfg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, ok := cat.DisplayName(key); !ok {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(w, "unknown library %s\n", key)
		s.logf("%s %s 404", r.Method, r.URL.Path)
		return
	}
	one, err := cat.Select([]string{key})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	entries, _, err := scorecard.BuildContext(s.root(), one)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := json.MarshalIndent(entries[0], "", "  ")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append(body, '\n'))
	s.logf("%s %s 200", r.Method, r.URL.Path)
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(err.Error() + "\n"))
	s.logf("%s %s 500 %s", r.Method, r.URL.Path, firstLine(err.Error()))
}

func (s *Server) root() string {
	if strings.TrimSpace(s.cfg.Root) == "" {
		return "."
	}
	return s.cfg.Root
}

func (s *Server) logf(format string, args ...interface{}) {
	if s.log == nil {
		return
	}
	_, _ = fmt.Fprintf(s.log, "preview: "+format+"\n", args...)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts the
// server down. ready, if non-nil, receives the bound address once listening.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, ready chan<- string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if ready != nil {
		ready <- ln.Addr().String()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		return nil
	}
}
