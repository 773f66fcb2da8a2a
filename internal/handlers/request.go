package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/xelth-com/linerecords/internal/models"
)

const maxFormMemory = 10 << 20

// isJSON reports whether the request body is JSON
func isJSON(req *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	return ct == "application/json"
}

// decodeBody reads JSON or form values into dst.
// Form keys are the json tags of dst.
func decodeBody(req *http.Request, dst interface{}, formKeys map[string]*string) error {
	if isJSON(req) {
		err := json.NewDecoder(req.Body).Decode(dst)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: invalid JSON body", models.ErrInvalidValue)
		}
		return nil
	}
	if err := req.ParseForm(); err != nil {
		return fmt.Errorf("%w: invalid form body", models.ErrInvalidValue)
	}
	for key, ptr := range formKeys {
		if vals, ok := req.Form[key]; ok && len(vals) > 0 {
			*ptr = vals[0]
		}
	}
	return nil
}

// fieldEdit is a single-field edit posted as JSON or as a form
type fieldEdit struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func readFieldEdit(req *http.Request) (fieldEdit, error) {
	var e fieldEdit
	if err := decodeBody(req, &e, map[string]*string{"field": &e.Field, "value": &e.Value}); err != nil {
		return e, err
	}
	if e.Field == "" {
		return e, fmt.Errorf("%w: field is required", models.ErrUnknownField)
	}
	return e, nil
}
