package handlers

import (
	"bufio"
	"fmt"
	"time"

	"myposts/app"
	"myposts/notify"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// Events streams change notifications as server-sent events until the
// client goes away or the hub stops
func Events(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no")

		events, unsubscribe := a.Hub.Subscribe()
		heartbeat := a.Config.EventsHeartbeat
		if heartbeat <= 0 {
			heartbeat = 15 * time.Second
		}
		logger := a.Logger

		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			defer unsubscribe()

			ticker := time.NewTicker(heartbeat)
			defer ticker.Stop()

			if err := writeComment(w, "connected"); err != nil {
				return
			}

			for {
				select {
				case ev, ok := <-events:
					if !ok {
						return
					}
					if err := writeEvent(w, ev); err != nil {
						logger.Debug("event stream closed", "error", err)
						return
					}
				case <-ticker.C:
					if err := writeComment(w, "ping"); err != nil {
						logger.Debug("event stream closed", "error", err)
						return
					}
				}
			}
		}))

		return nil
	}
}

// writeEvent emits one notification. The payload is empty: listeners
// re-fetch with get-all-posts.
func writeEvent(w *bufio.Writer, ev notify.Event) error {
	if _, err := fmt.Fprintf(w, "id: %d\nevent: %s\ndata: {}\n\n", ev.ID, ev.Name); err != nil {
		return err
	}
	return w.Flush()
}

func writeComment(w *bufio.Writer, text string) error {
	if _, err := fmt.Fprintf(w, ": %s\n\n", text); err != nil {
		return err
	}
	return w.Flush()
}
