package handlers

import "net/http"

// HealthCheck returns a simple liveness handler. It makes no dependency
// calls: the body is fixed regardless of the state of the vector store
// or the completion provider.
func HealthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
