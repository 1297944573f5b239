package fetcher

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// DecodeJSONObject decodes a single JSON object from a reader.
func DecodeJSONObject[T any](r io.Reader) (*T, error) {
	var obj T
	if err := json.NewDecoder(r).Decode(&obj); err != nil {
		return nil, eris.Wrap(err, "json: decode object")
	}
	return &obj, nil
}

// ReadJSON opens source and decodes it as one JSON document.
func ReadJSON[T any](ctx context.Context, f Fetcher, source string) (*T, error) {
	rc, err := Open(ctx, f, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck

	obj, err := DecodeJSONObject[T](rc)
	if err != nil {
		return nil, eris.Wrapf(err, "json: %s", source)
	}
	return obj, nil
}
