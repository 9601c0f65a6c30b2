// Package client talks to a squirrel server over HTTP.
package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/carlmjohnson/requests"

	"github.com/stevemurr/squirrel-server/store"
)

// ErrNotFound is returned by Update and Delete when the server answers 404.
var ErrNotFound = errors.New("squirrel not found")

type Client struct {
	baseURL string
	hc      *http.Client
}

// New returns a client for the server at baseURL, e.g. "http://localhost:8080".
// hc may be nil to use http.DefaultClient.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: baseURL, hc: hc}
}

func (c *Client) req(path string) *requests.Builder {
	return requests.URL(c.baseURL).Client(c.hc).Path(path)
}

func itemPath(id string) string {
	return "/squirrels/" + url.PathEscape(id)
}

func form(name, size string) url.Values {
	return url.Values{"name": {name}, "size": {size}}
}

func (c *Client) List(ctx context.Context) ([]store.Squirrel, error) {
	var items []store.Squirrel
	err := c.req("/squirrels").ToJSON(&items).Fetch(ctx)
	return items, err
}

// Get returns nil, nil if the squirrel does not exist.
func (c *Client) Get(ctx context.Context, id string) (*store.Squirrel, error) {
	var sq store.Squirrel
	err := c.req(itemPath(id)).ToJSON(&sq).Fetch(ctx)
	if requests.HasStatusErr(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sq, nil
}

func (c *Client) Create(ctx context.Context, name, size string) (*store.Squirrel, error) {
	var sq store.Squirrel
	err := c.req("/squirrels").
		Post().
		BodyForm(form(name, size)).
		CheckStatus(http.StatusCreated).
		ToJSON(&sq).
		Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return &sq, nil
}

func (c *Client) Update(ctx context.Context, id, name, size string) error {
	err := c.req(itemPath(id)).
		Put().
		BodyForm(form(name, size)).
		CheckStatus(http.StatusNoContent).
		Fetch(ctx)
	if requests.HasStatusErr(err, http.StatusNotFound) {
		return ErrNotFound
	}
	return err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	err := c.req(itemPath(id)).
		Delete().
		CheckStatus(http.StatusNoContent).
		Fetch(ctx)
	if requests.HasStatusErr(err, http.StatusNotFound) {
		return ErrNotFound
	}
	return err
}
