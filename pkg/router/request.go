package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const maxMultipartMemory = 32 << 20

// parseRequest fills v from the query string (GET), a JSON body or a
// multipart/url-encoded form (POST). Form and query values are matched
// against the json tags of v.
func parseRequest(req *http.Request, v any) error {
	if req.Method == http.MethodPost {
		contentType := req.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(contentType, "multipart/form-data"):
			if err := req.ParseMultipartForm(maxMultipartMemory); err != nil {
				return err
			}
			return decodeValues(req.MultipartForm.Value, v)

		case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
			if err := req.ParseForm(); err != nil {
				return err
			}
			return decodeValues(req.PostForm, v)

		default:
			if req.Body == nil || req.ContentLength == 0 {
				return nil
			}
			return json.NewDecoder(req.Body).Decode(v)
		}
	}

	return decodeValues(req.URL.Query(), v)
}

func decodeValues(values map[string][]string, v any) error {
	flat := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 1 {
			flat[key] = vals[0]
		} else {
			flat[key] = vals
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           v,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(flat)
}
