package router

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/gobudget/internal/pkg/goerror"
	"github.com/shandysiswandi/gobudget/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// maxBodyBytes caps decoded JSON request bodies.
const maxBodyBytes = 1 << 20

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	*http.Request
}

// GetParam reads a path parameter stored by httprouter.
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

func (r *Request) GetParamInt64(key string) (int64, error) {
	value, err := strconv.ParseInt(r.GetParam(key), 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("param must integer value")
	}
	return value, nil
}

func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// GetQueryDate parses the query value with format. A missing value yields
// the zero time.
func (r *Request) GetQueryDate(key, format string) (time.Time, error) {
	queryValue := r.GetQuery(key)
	if queryValue == "" {
		return time.Time{}, nil
	}

	value, err := time.Parse(format, queryValue)
	if err != nil {
		return time.Time{}, goerror.NewInvalidFormat("Invalid query " + key)
	}

	return value, nil
}

// GetQueryDecimal parses a decimal query value. A missing value yields nil.
func (r *Request) GetQueryDecimal(key string) (*decimal.Decimal, error) {
	queryValue := r.GetQuery(key)
	if queryValue == "" {
		return nil, nil
	}

	value, err := money.Parse(queryValue)
	if err != nil {
		return nil, goerror.NewInvalidFormat("Invalid query " + key)
	}

	return &value, nil
}

// DecodeBody decodes a single JSON document into dst, rejecting unknown fields.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return goerror.NewInvalidFormat()
	}

	return nil
}

// DecodeOptionalBody is DecodeBody that accepts an empty body.
func (r *Request) DecodeOptionalBody(dst any) error {
	if r == nil || r.Body == nil || r.ContentLength == 0 {
		return nil
	}

	return r.DecodeBody(dst)
}
