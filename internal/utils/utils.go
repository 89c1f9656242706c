package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type Envelope map[string]interface{}

var errTrailingData = errors.New("request body must contain a single JSON value")

// WriteJSON writes data as the response body. data is usually an Envelope,
// but slices and structs are written as-is.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	js, err := json.MarshalIndent(data, "", " ")
	if err != nil {
		log.WithError(err).Error("error marshaling JSON")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	js = append(js, '\n')
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(js); err != nil {
		log.WithError(err).Error("error writing JSON response")
	}
}

// ReadJSON decodes the request body into dst, rejecting trailing data.
func ReadJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errTrailingData
	}
	return nil
}
