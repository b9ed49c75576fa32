package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rbaskam/goblog/internal/validate"
)

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// JSONError writes {"error": "..."} with a given status.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// JSONValidation writes a 422 with messages keyed by field name, e.g.
// {"message": "Invalid request data", "errors": {"title": "This field is required"}}.
func JSONValidation(w http.ResponseWriter, fieldErrors []validate.FieldError) {
	errs := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		if _, ok := errs[fe.Field]; !ok {
			errs[fe.Field] = fe.Message
		}
	}

	JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"message": "Invalid request data",
		"errors":  errs,
	})
}

// DecodeJSON parses the JSON body into v and handles invalid JSON.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		JSONError(w, http.StatusBadRequest, "empty request body")
		return http.ErrBodyNotAllowed
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return err
	}

	return nil
}
