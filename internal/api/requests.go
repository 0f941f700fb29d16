package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var errBadRequestBody = errors.New("invalid request body")

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSONBody decodes the request body into dst and runs struct
// validation. Unknown fields are rejected to catch client typos early.
func decodeJSONBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequestBody, err)
	}
	if err := validate.Struct(dst); err != nil {
		return err
	}
	return nil
}
