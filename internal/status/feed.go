package status

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/adityaksh/sakha/internal/observe"
)

// feedWriteTimeout bounds one websocket write to a feed client.
const feedWriteTimeout = 5 * time.Second

// Feed streams hub events to websocket clients as JSON text messages. Each
// client first receives the recent backlog, then live events as they are
// published.
type Feed struct {
	hub *Hub
	log *slog.Logger
}

// NewFeed returns a Feed over hub.
func NewFeed(hub *Hub, log *slog.Logger) *Feed {
	if log == nil {
		log = slog.Default()
	}
	return &Feed{hub: hub, log: log}
}

var _ http.Handler = (*Feed)(nil)

// ServeHTTP upgrades the request and streams events until the client goes
// away or a write fails.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		f.log.Warn("feed upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "feed closed")

	ctx := r.Context()
	m := observe.DefaultMetrics()
	m.FeedClients.Add(ctx, 1)
	defer m.FeedClients.Add(context.WithoutCancel(ctx), -1)

	events, unsubscribe := f.hub.Subscribe()
	defer unsubscribe()

	for _, e := range f.hub.Recent() {
		if err := f.write(ctx, conn, e); err != nil {
			f.log.Debug("feed client dropped during backlog", "error", err)
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "server shutting down")
			return
		case e, ok := <-events:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "feed closed")
				return
			}
			if err := f.write(ctx, conn, e); err != nil {
				f.log.Debug("feed client dropped", "error", err)
				return
			}
		}
	}
}

func (f *Feed) write(ctx context.Context, conn *websocket.Conn, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	wctx, cancel := context.WithTimeout(ctx, feedWriteTimeout)
	defer cancel()
	return conn.Write(wctx, websocket.MessageText, data)
}
