package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/pkg/log"
	"github.com/sandevgo/sejarahbot/pkg/validate"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error  string                `json:"error"`
	Fields []validate.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status and a client message. Internal error
// text is logged, never sent.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Data tidak valid", Fields: verr.Fields})
	case errors.Is(err, core.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: clientMessage(err)})
	case errors.Is(err, core.ErrAuth):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Email atau kata sandi salah"})
	case errors.Is(err, core.ErrUnverified):
		writeJSON(w, http.StatusForbidden, errorBody{Error: "Email belum diverifikasi"})
	case errors.Is(err, core.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Data tidak ditemukan"})
	case errors.Is(err, core.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody{Error: clientMessage(err)})
	default:
		log.FromCtx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Terjadi kesalahan pada server"})
	}
}

var clientMessages = []struct {
	err error
	msg string
}{
	{errVerificationCode, "Kode verifikasi salah atau sudah kadaluarsa"},
	{errAlreadyVerified, "Email sudah terverifikasi sebelumnya"},
	{core.ErrConflict, "Data sudah terdaftar"},
	{core.ErrInvalidInput, "Data tidak valid"},
}

func clientMessage(err error) string {
	for _, m := range clientMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return "Terjadi kesalahan pada server"
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return core.ErrInvalidInput
	}
	return nil
}
