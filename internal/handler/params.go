package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/ctxkeys"
	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/pagination"
	"github.com/templui/goalnote/internal/validation"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = apperror.BadRequest("Invalid request body")

// decodeJSON reads a single JSON object from the body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			if typeErr.Value == "null" {
				return apperror.Wrap(apperror.KindBadRequest, fmt.Sprintf("%s must not be null", typeErr.Field), err)
			}
			return apperror.Wrap(apperror.KindBadRequest, fmt.Sprintf("%s has the wrong type", typeErr.Field), err)
		}
		return apperror.Wrap(apperror.KindBadRequest, errInvalidBody.Message, err)
	}

	return nil
}

// checkPayload runs the struct validation rules and turns rule failures into
// a 400 with every failed field listed.
func checkPayload(v *validation.Validator, payload any) error {
	err := v.Validate(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return apperror.Wrap(apperror.KindBadRequest, fieldErrs.Error(), err)
	}
	return err
}

// owner returns the authenticated owner. Routes reaching this are wrapped in
// RequireAuth, so a missing owner is a wiring mistake.
func owner(r *http.Request) (model.OwnerID, error) {
	o, ok := ctxkeys.Owner(r.Context())
	if !ok {
		return 0, apperror.Unauthorized("Not authenticated")
	}
	return o, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("id must be a positive integer")
	}
	return id, nil
}

// pageParams reads cursor, size and sortOrder. A missing size falls back to
// the default and oversized pages are capped at maxSize.
func pageParams(r *http.Request, maxSize int) (pagination.Params, error) {
	q := r.URL.Query()
	p := pagination.Params{Size: pagination.DefaultSize}

	if maxSize <= 0 {
		maxSize = pagination.MaxSize
	}

	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return p, apperror.BadRequest("size must be a positive integer")
		}
		p.Size = min(size, maxSize)
	}

	if raw := q.Get("cursor"); raw != "" {
		cursor, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return p, apperror.BadRequest("cursor must be an integer id")
		}
		p.Cursor = cursor
	}

	sort, err := pagination.ParseSortOrder(q.Get("sortOrder"))
	if err != nil {
		return p, err
	}
	p.Sort = sort

	return p, p.Validate()
}

func queryInt64(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperror.BadRequest(key + " must be an integer")
	}
	return &v, nil
}

func queryBool(r *http.Request, key string) (*bool, error) {
	raw := strings.ToLower(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.BadRequest(key + " must be true or false")
	}
	return &v, nil
}

// pageSizeMax reads the configured cap from the request context.
func pageSizeMax(r *http.Request) int {
	if cfg := ctxkeys.Config(r.Context()); cfg != nil {
		return cfg.PageSizeMax
	}
	return pagination.MaxSize
}
