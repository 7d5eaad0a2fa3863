package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ymiyake/enquete/internal/server/auth"
)

// handleData serves {GET|POST|PUT|PATCH} /{path}.json?auth={idToken}.
// The path names a node of the JSON tree; GET of an absent node answers
// null, POST answers {"name": generatedKey}, and both PUT and PATCH echo
// the written value.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	path, ok := strings.CutSuffix(strings.Trim(r.URL.Path, "/"), ".json")
	if !ok {
		writeServiceError(w, http.StatusNotFound, "NOT_FOUND")
		return
	}

	token := r.URL.Query().Get("auth")
	if _, err := auth.GetUserIDFromToken(token, s.secretKey); err != nil {
		writeServiceError(w, http.StatusUnauthorized, "Permission denied")
		return
	}

	switch r.Method {
	case http.MethodGet:
		v, err := s.store.Get(r.Context(), path)
		if err != nil {
			s.log.Error(r.Context(), "store get failed", "path", path, "err", err)
			writeServiceError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
			return
		}
		writeJSON(w, http.StatusOK, v)

	case http.MethodPost:
		v, ok := decodeBody(w, r)
		if !ok {
			return
		}
		id, err := s.store.Post(r.Context(), path, v)
		if err != nil {
			s.log.Error(r.Context(), "store post failed", "path", path, "err", err)
			writeServiceError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"name": id})

	case http.MethodPut:
		v, ok := decodeBody(w, r)
		if !ok {
			return
		}
		if err := s.store.Put(r.Context(), path, v); err != nil {
			s.log.Error(r.Context(), "store put failed", "path", path, "err", err)
			writeServiceError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
			return
		}
		writeJSON(w, http.StatusOK, v)

	case http.MethodPatch:
		v, ok := decodeBody(w, r)
		if !ok {
			return
		}
		fields, isObject := v.(map[string]any)
		if !isObject {
			writeServiceError(w, http.StatusBadRequest, "INVALID_PAYLOAD")
			return
		}
		if err := s.store.Patch(r.Context(), path, fields); err != nil {
			s.log.Error(r.Context(), "store patch failed", "path", path, "err", err)
			writeServiceError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
			return
		}
		writeJSON(w, http.StatusOK, v)

	default:
		writeServiceError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request) (any, bool) {
	var v any
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeServiceError(w, http.StatusBadRequest, "INVALID_PAYLOAD")
		return nil, false
	}
	return v, true
}
