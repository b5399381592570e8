package httpjson

import (
	"encoding/json"
	"io"
	"net/http"
)

// MaxBody caps the request bodies Read will decode.
const MaxBody = 64 << 10

type errorBody struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

func Write(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Read decodes one JSON object, rejecting unknown fields and oversized bodies.
func Read(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorBody{Error: msg})
}

// Redirect reports an error along with the page the client should open next.
func Redirect(w http.ResponseWriter, status int, msg, to string) {
	Write(w, status, errorBody{Error: msg, Redirect: to})
}
