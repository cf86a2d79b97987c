package stubserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"ragchat/client/internal/model"
)

func contextWithUser(r *http.Request, user model.User) context.Context {
	return context.WithValue(r.Context(), ctxKey{}, user)
}

func currentUser(r *http.Request) model.User {
	user, _ := r.Context().Value(ctxKey{}).(model.User)
	return user
}

// respondWithDetail writes the backend's error body shape.
func respondWithDetail(w http.ResponseWriter, code int, detail string) {
	respondWithJSON(w, code, map[string]string{"detail": detail})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
