package response

import (
	"encoding/json"
	"net/http"
)

// JSON encodes data onto w with the given status. Encode failures are
// not recoverable once the status line has gone out, so they are
// swallowed here.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}
