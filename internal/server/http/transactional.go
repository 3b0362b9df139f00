package httpserver

import (
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/pressroom/article-service/internal/container"
)

// txHandler is the shape of a resource handler. It receives a container bound
// to the request's open transaction and returns the success status and body.
// A returned error rolls back the transaction; no response is written until
// commit has succeeded.
type txHandler func(r *http.Request, c *container.Container) (int, any, error)

// transactional wraps a handler in one unit of work: begin, run the handler
// over a transaction-bound container, commit on success, roll back on any
// error. This is the only place commit and rollback happen.
func (s *Server) transactional(h txHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			status int
			body   any
		)

		err := s.txRunner.WithTransaction(r.Context(), func(tx pgx.Tx) error {
			c := container.New(tx, s.logger)
			var herr error
			status, body, herr = h(r, c)
			return herr
		})
		if err != nil {
			if s.metrics != nil {
				s.metrics.TxRollbacks.Inc()
			}
			s.writeDomainError(w, r, err)
			return
		}

		if s.metrics != nil {
			s.metrics.TxCommits.Inc()
		}
		writeJSON(w, status, body)
	}
}
