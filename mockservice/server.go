package mockservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const listenerTimeout = time.Second * 10

// Server is a running instance of the mock service.
type Server struct {
	server   *http.Server
	listener net.Listener
	done     chan struct{}
}

// Start listens on the given port, or on a free port if it is zero, and does not return until
// the listener is answering requests.
func Start(port int, handler http.Handler) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, errors.Wrap(err, "could not start mock service")
	}
	s := &Server{
		server: &http.Server{
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == "HEAD" && r.URL.Path == "/" {
					w.WriteHeader(200) // readiness check
					return
				}
				handler.ServeHTTP(w, r)
			}),
			ReadHeaderTimeout: listenerTimeout,
		},
		listener: listener,
		done:     make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		_ = s.server.Serve(listener)
	}()

	// Wait till the server is definitely listening for requests before we run any tests
	deadline := time.NewTimer(listenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			_ = s.Close()
			return nil, fmt.Errorf("could not detect mock service listener at %s", s.URL())
		case <-s.done:
			return nil, fmt.Errorf("mock service listener at %s stopped unexpectedly", s.URL())
		case <-ticker.C:
			resp, err := http.DefaultClient.Head(s.URL())
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == 200 {
					return s, nil
				}
			}
		}
	}
}

// URL returns the base URI of the service, such as "http://127.0.0.1:8000".
func (s *Server) URL() string {
	return "http://" + s.listener.Addr().String()
}

// Close stops the server and waits for in-flight requests to finish.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), listenerTimeout)
	defer cancel()
	err := s.server.Shutdown(ctx)
	<-s.done
	return err
}
