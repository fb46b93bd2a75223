package router

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/shandysiswandi/gobudget/internal/pkg/goerror"
	"github.com/shandysiswandi/gobudget/internal/pkg/validator"
)

const defaultSuccessMessage = "request has been successfully"

type errorResponse struct {
	Message string            `json:"message" example:"Validation error"`
	Error   map[string]string `json:"error,omitempty"`
}

type successResponse struct {
	Message string         `json:"message" example:"request has been successfully"`
	Data    any            `json:"data" swaggertype:"object"`
	Meta    map[string]any `json:"meta,omitempty" swaggertype:"object"`
}

// Optional interfaces a handler payload may implement.
type (
	withStatus  interface{ StatusCode() int }
	withMessage interface{ Message() string }
	withMeta    interface{ Meta() map[string]any }
	withCookies interface{ Cookies() []*http.Cookie }
)

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response body", "error", err)
	}
}

// writeError renders err as an errorResponse. Anything that is not a
// *goerror.Error is reported as a bare 500.
func writeError(w http.ResponseWriter, err error) {
	var ge *goerror.Error
	if !errors.As(err, &ge) {
		writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	resp := errorResponse{Message: ge.Msg(), Error: ge.Fields()}
	if verr := (validator.V10ValidationError)(nil); errors.As(err, &verr) {
		resp.Error = verr.Values()
	}

	if d := ge.RetryAfter(); d > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(d.Seconds()))))
	}

	writeJSON(w, resp, ge.StatusCode())
}

// writeSuccess wraps resp in the success envelope. A nil payload or a 204
// status writes no body.
func writeSuccess(w http.ResponseWriter, resp any) {
	if c, ok := resp.(withCookies); ok {
		for _, cookie := range c.Cookies() {
			http.SetCookie(w, cookie)
		}
	}

	code := http.StatusOK
	if s, ok := resp.(withStatus); ok {
		code = s.StatusCode()
	}
	if resp == nil || code == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	env := successResponse{Message: defaultSuccessMessage, Data: resp}
	if m, ok := resp.(withMessage); ok {
		env.Message = m.Message()
	}
	if m, ok := resp.(withMeta); ok {
		env.Meta = m.Meta()
	}

	writeJSON(w, env, code)
}
