package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// File is one multipart file part.
type File struct {
	Field  string
	Name   string
	Reader io.Reader
}

// Form is a multipart/form-data payload for Upload.
type Form struct {
	Fields map[string]string
	Files  []File
}

// Do sends one request through the interceptors and returns the raw envelope
// data. For GET and DELETE the payload becomes query parameters, otherwise it
// is the JSON body.
func (c *Client) Do(ctx context.Context, method, rawURL string, payload any, opts ...RequestOption) (json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := newRequestConfig(strings.ToUpper(method), rawURL, opts)
	cfg.requestID = cfg.Headers[HeaderRequestID]
	if cfg.requestID == "" {
		cfg.requestID = uuid.NewString()
	}

	if cfg.ShowLoading && c.loading != nil {
		c.loading.ShowLoading(ctx)
		defer c.loading.HideLoading(ctx)
	}

	resp, err := c.send(ctx, cfg, payload)
	return c.intercept(ctx, cfg, resp, err)
}

// Get issues a GET with params in the query string. See queryValues for the
// accepted params shapes.
func Get[T any](ctx context.Context, c *Client, url string, params any, opts ...RequestOption) (T, error) {
	return request[T](ctx, c, http.MethodGet, url, params, opts)
}

// Post issues a POST with data as the JSON body.
func Post[T any](ctx context.Context, c *Client, url string, data any, opts ...RequestOption) (T, error) {
	return request[T](ctx, c, http.MethodPost, url, data, opts)
}

// Put issues a PUT with data as the JSON body.
func Put[T any](ctx context.Context, c *Client, url string, data any, opts ...RequestOption) (T, error) {
	return request[T](ctx, c, http.MethodPut, url, data, opts)
}

// Delete issues a DELETE with params in the query string, shaped as for Get.
func Delete[T any](ctx context.Context, c *Client, url string, params any, opts ...RequestOption) (T, error) {
	return request[T](ctx, c, http.MethodDelete, url, params, opts)
}

// Upload posts form as multipart/form-data.
func Upload[T any](ctx context.Context, c *Client, url string, form *Form, opts ...RequestOption) (T, error) {
	opts = append(opts, multipart())
	return request[T](ctx, c, http.MethodPost, url, form, opts)
}

func request[T any](ctx context.Context, c *Client, method, url string, payload any, opts []RequestOption) (T, error) {
	var out T
	raw, err := c.Do(ctx, method, url, payload, opts...)
	if err != nil {
		return out, err
	}
	if err := decodeData(raw, &out); err != nil {
		return out, &DecodeError{Status: http.StatusOK, Body: raw, Err: err}
	}
	return out, nil
}

func decodeData(raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return json.Unmarshal(trimmed, out)
}

// placePayload puts the payload in the query string, JSON body or multipart
// form depending on the verb.
func placePayload(req *resty.Request, cfg RequestConfig, payload any) error {
	if cfg.multipart {
		return placeForm(req, payload)
	}

	switch cfg.Method {
	case http.MethodGet, http.MethodDelete:
		values, err := queryValues(payload)
		if err != nil {
			return &constructionError{err: err}
		}
		if len(values) > 0 {
			req.SetQueryParamsFromValues(values)
		}
	default:
		if payload != nil {
			req.SetBody(payload)
		}
	}
	return nil
}

func placeForm(req *resty.Request, payload any) error {
	form, ok := payload.(*Form)
	if !ok {
		return &constructionError{err: fmt.Errorf("upload payload must be *apiclient.Form, got %T", payload)}
	}
	if form == nil {
		return &constructionError{err: fmt.Errorf("upload form is nil")}
	}

	// resty replaces the JSON default with multipart/form-data plus boundary.
	fields := form.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	req.SetMultipartFormData(fields)
	for _, f := range form.Files {
		if f.Reader == nil {
			return &constructionError{err: fmt.Errorf("upload file %q has no reader", f.Name)}
		}
		field := f.Field
		if field == "" {
			field = "file"
		}
		req.SetFileReader(field, f.Name, f.Reader)
	}
	return nil
}

// queryValues converts the supported parameter shapes to url.Values: nil,
// url.Values, map[string]string, map[string][]string, map[string]any and
// flat structs (or pointers to them) keyed by their json tags.
func queryValues(params any) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	case map[string]string:
		out := make(url.Values, len(p))
		for k, v := range p {
			out.Set(k, v)
		}
		return out, nil
	case map[string][]string:
		return url.Values(p), nil
	case map[string]any:
		out := make(url.Values, len(p))
		for k, v := range p {
			switch vv := v.(type) {
			case nil:
				continue
			case []string:
				for _, s := range vv {
					out.Add(k, s)
				}
			default:
				out.Set(k, fmt.Sprint(vv))
			}
		}
		return out, nil
	default:
		v := reflect.ValueOf(params)
		if v.Kind() == reflect.Pointer && !v.IsNil() {
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return nil, fmt.Errorf("unsupported query parameter type %T", params)
		}
		return structValues(params)
	}
}

// structValues flattens a struct through its JSON form, so json tags and
// omitempty decide the keys. Nested objects are rejected.
func structValues(params any) (url.Values, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode query parameters: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("encode query parameters: %w", err)
	}
	out := make(url.Values, len(fields))
	for k, v := range fields {
		switch vv := v.(type) {
		case nil:
			continue
		case []any:
			for _, item := range vv {
				s, ok := scalarString(item)
				if !ok {
					return nil, fmt.Errorf("query parameter %q: unsupported element type %T", k, item)
				}
				out.Add(k, s)
			}
		default:
			s, ok := scalarString(vv)
			if !ok {
				return nil, fmt.Errorf("query parameter %q: unsupported type %T", k, vv)
			}
			out.Set(k, s)
		}
	}
	return out, nil
}

func scalarString(v any) (string, bool) {
	switch vv := v.(type) {
	case string:
		return vv, true
	case json.Number:
		return vv.String(), true
	case bool:
		return fmt.Sprint(vv), true
	default:
		return "", false
	}
}
