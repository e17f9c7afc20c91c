// Package render writes JSON responses and the {"detail": ...} error envelope.
package render

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/ctxkeys"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("render json failed", "error", err)
	}
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error maps err to its status and writes the error envelope. Internal
// errors are logged with their cause; the client only sees the generic
// message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperror.KindOf(err)

	if kind == apperror.KindInternal {
		attrs := []any{"error", err, "method", r.Method, "path", r.URL.Path}
		if owner, ok := ctxkeys.Owner(r.Context()); ok {
			attrs = append(attrs, "user_id", owner)
		}
		slog.Error("request failed", attrs...)
	}

	JSON(w, kind.Status(), errorBody{Detail: apperror.Message(err)})
}

// Detail writes an error envelope with an explicit status
func Detail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Detail: message})
}
