package transport

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/kirra-gql/validate/schema"
)

// Server upgrades incoming HTTP requests into validation websocket
// connections, all serving the same fixed schema and sharing one result
// cache.
type Server struct {
	Schema            *schema.Schema
	SchemaFingerprint string
	Cache             *ResultCache
	Logger            logrus.FieldLogger
	Upgrader          websocket.Upgrader
}

// ServeHTTP upgrades r and serves validate messages over it until the
// connection closes. It never returns before that point, matching the
// hijack-and-block shape of this corpus's own websocket handlers.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c := &Connection{
		Schema:            s.Schema,
		SchemaFingerprint: s.SchemaFingerprint,
		Cache:             s.Cache,
		Logger:            s.Logger,
	}
	c.Serve(conn)
}
