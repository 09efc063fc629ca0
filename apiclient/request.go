package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// Request is an immutable description of one API call. It carries everything
// needed to send it again after a token refresh.
type Request struct {
	method    string
	path      string
	body      []byte
	header    http.Header
	anonymous bool
}

// NewRequest describes a call without a body.
func NewRequest(method, path string) Request {
	return Request{method: method, path: path, header: http.Header{}}
}

// JSON describes a call whose body is v encoded as JSON. A nil v sends no body.
func JSON(method, path string, v any) (Request, error) {
	req := NewRequest(method, path)
	if v == nil {
		return req, nil
	}
	body, err := json.Marshal(v)
	if err != nil {
		return Request{}, fmt.Errorf("encoding %s %s body: %w", method, path, err)
	}
	req.body = body
	req.header.Set("Content-Type", "application/json")
	return req, nil
}

// Multipart describes a call uploading a single file part.
func Multipart(method, path, field, fileName, contentType string, content []byte) (Request, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, fileName))
	partHeader.Set("Content-Type", contentType)
	part, err := mw.CreatePart(partHeader)
	if err != nil {
		return Request{}, fmt.Errorf("creating multipart part: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return Request{}, fmt.Errorf("writing multipart part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Request{}, fmt.Errorf("closing multipart body: %w", err)
	}

	req := NewRequest(method, path)
	req.body = buf.Bytes()
	req.header.Set("Content-Type", mw.FormDataContentType())
	return req, nil
}

func (r Request) Method() string { return r.method }
func (r Request) Path() string   { return r.path }

// Body returns a copy of the encoded body.
func (r Request) Body() []byte { return bytes.Clone(r.body) }

// Header returns a copy of the request headers.
func (r Request) Header() http.Header { return r.header.Clone() }

// IsAnonymous reports whether the call is sent without credentials.
func (r Request) IsAnonymous() bool { return r.anonymous }

// WithHeader returns a copy of r with the header set.
func (r Request) WithHeader(key, value string) Request {
	cp := r
	cp.header = r.header.Clone()
	if cp.header == nil {
		cp.header = http.Header{}
	}
	cp.header.Set(key, value)
	return cp
}

// Anonymous returns a copy of r that never carries a bearer token and never
// takes part in token refresh (login, registration, password reset).
func (r Request) Anonymous() Request {
	cp := r
	cp.anonymous = true
	return cp
}

func (r Request) String() string {
	return r.method + " " + r.path
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}
