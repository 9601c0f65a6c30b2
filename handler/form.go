package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/stevemurr/squirrel-server/store"
)

// ErrMalformedBody is returned for create/update bodies that cannot be
// turned into fields.
var ErrMalformedBody = errors.New("malformed request body")

// maxBodySize caps form bodies at 2 MiB.
const maxBodySize = 2 << 20

// parseForm decodes "key=value&key=value". Empty segments are skipped, a
// segment without '=' or with an empty key is an error. Later keys win.
func parseForm(body string) (store.Fields, error) {
	fields := store.Fields{}
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: missing '=' in %q", ErrMalformedBody, pair)
		}
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, fmt.Errorf("%w: bad key %q", ErrMalformedBody, k)
		}
		if key == "" {
			return nil, fmt.Errorf("%w: empty key in %q", ErrMalformedBody, pair)
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			return nil, fmt.Errorf("%w: bad value for %q", ErrMalformedBody, key)
		}
		fields[key] = val
	}
	return fields, nil
}

// readSquirrelFields reads the request body and checks that both name and
// size are present and non-empty.
func readSquirrelFields(r *http.Request) (store.Fields, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("%w: body too large", ErrMalformedBody)
	}
	fields, err := parseForm(string(body))
	if err != nil {
		return nil, err
	}
	// an empty value would store a blank field, so it counts as missing
	for _, k := range []string{"name", "size"} {
		if fields[k] == "" {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformedBody, k)
		}
	}
	return store.Fields{"name": fields["name"], "size": fields["size"]}, nil
}
