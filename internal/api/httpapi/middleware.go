package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/silkway-cargo/silkway/internal/models"
)

type ctxKey int

const actorKey ctxKey = iota

// actorFromHeaders снимает проверенную личность с заголовков,
// проставленных внешним auth-прокси. Сам сервис токены не проверяет.
func actorFromHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var actor models.Actor
		if id, err := strconv.ParseUint(r.Header.Get("X-User-Id"), 10, 64); err == nil {
			actor.UserID = id
		}
		actor.Role = r.Header.Get("X-User-Role")

		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func actorFrom(ctx context.Context) models.Actor {
	actor, _ := ctx.Value(actorKey).(models.Actor)
	return actor
}

func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actorFrom(r.Context()).UserID == 0 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !actorFrom(r.Context()).IsAdmin() {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
