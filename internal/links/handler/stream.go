package handler

import (
	"net/http"
	"time"

	"utm-som/internal/apierrors"
	"utm-som/internal/observability"
	"utm-som/internal/sink"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const noticeWriteTimeout = 5 * time.Second

// upgrader is a shared WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Notices carry no private data; any origin may follow them.
		return true
	},
}

// HandleNoticeStream pushes the save notice of the given user over a
// websocket. The current notice is sent on connect, then every change, and
// the idle notice once a saved or error notice has expired.
func (h *Handler) HandleNoticeStream(c *gin.Context) {
	ctx := c.Request.Context()

	watch, err := h.processor.WatchNotice(ctx, c.Query("usuario"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	defer watch.Stop()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(ctx, "failed to upgrade notice stream", err)
		return
	}
	defer conn.Close()

	ctx = observability.WithFields(ctx, observability.Field{Key: "usuario", Value: watch.User})

	// Clients never send anything; reading only notices the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					h.logger.Debug(ctx, "notice stream closed without handshake")
				}
				return
			}
		}
	}()

	send := func(notice sink.Notice) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(noticeWriteTimeout))
		if err := conn.WriteJSON(NoticeResponse{State: string(notice.State), Message: notice.Message}); err != nil {
			h.logger.Error(ctx, "failed to write notice", err)
			return false
		}
		return true
	}

	if !send(watch.Current) {
		return
	}

	var (
		expiry  *time.Timer
		expired <-chan time.Time
	)
	defer func() {
		if expiry != nil {
			expiry.Stop()
		}
	}()

	for {
		select {
		case <-closed:
			return

		case event := <-watch.Events:
			if expiry != nil {
				expiry.Stop()
				expiry, expired = nil, nil
			}
			if !send(event.Notice) {
				return
			}
			if event.TTL > 0 {
				expiry = time.NewTimer(event.TTL)
				expired = expiry.C
			}

		case <-expired:
			expiry, expired = nil, nil
			notice, err := h.processor.Notice(ctx, watch.User)
			if err != nil {
				return
			}
			if !send(notice) {
				return
			}
		}
	}
}
