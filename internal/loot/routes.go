package loot

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterRoutes wires the keep-alive boundary. An external monitor polls
// /ping so the free-tier host never idles the process; / is a small status
// page for humans.
func RegisterRoutes(r chi.Router, repo Repo, log *zap.SugaredLogger) {
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		recs, err := repo.RecentRecords(req.Context(), 10)
		if err != nil {
			log.Warnf("[http] history query failed: %v", err)
		}

		var b strings.Builder
		b.WriteString("<!DOCTYPE html><html><head><title>arc-loot-bot</title></head><body>")
		b.WriteString("<h1>arc-loot-bot</h1><p>Scout is online. Use <code>!loot</code> in Discord.</p>")
		if len(recs) > 0 {
			b.WriteString("<h2>Recent reports</h2><ul>")
			for _, rec := range recs {
				line := fmt.Sprintf("%s — %s", rec.Requester, rec.Outcome)
				if rec.HotZone != "" {
					line += " (hot zone: " + rec.HotZone + ")"
				}
				b.WriteString("<li>" + html.EscapeString(line) + "</li>")
			}
			b.WriteString("</ul>")
		}
		b.WriteString("</body></html>")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(b.String()))
	})
}
