package spectate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Handler routes /ws to the websocket stream and /state to the latest
// snapshot as plain JSON.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /ws", h)
	mux.HandleFunc("GET /state", func(w http.ResponseWriter, r *http.Request) {
		last := h.Last()
		if last == nil {
			http.Error(w, "no game state yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(last)
	})
	return mux
}

// ListenAndServe serves the hub on addr until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	h.log.WithField("addr", addr).Info("spectator server listening")

	select {
	case err := <-errc:
		return fmt.Errorf("spectator server: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("spectator shutdown: %w", err)
	}
	return nil
}
