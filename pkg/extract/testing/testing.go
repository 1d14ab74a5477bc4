// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package testing provides httpmock responders serving the files of a
// package's test-fixtures directory.
package testing

import (
	"errors"
	"net/http"
	"os"
	"path"

	"github.com/jarcoal/httpmock"
)

// ReadFixture returns the content of a file in test-fixtures.
// It panics when the file cannot be read.
func ReadFixture(name string) []byte {
	data, err := os.ReadFile(path.Join("test-fixtures", name))
	if err != nil {
		panic(err)
	}
	return data
}

// NewContentResponder returns a responder sending a fixture file with
// the given status and headers.
func NewContentResponder(status int, headers map[string]string, name string) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		rsp := httpmock.NewBytesResponse(status, ReadFixture(name))
		for k, v := range headers {
			rsp.Header.Set(k, v)
		}
		rsp.Request = req
		return rsp, nil
	}
}

// NewHTMLResponder returns a responder sending a fixture file as HTML.
func NewHTMLResponder(status int, name string) httpmock.Responder {
	return NewContentResponder(
		status,
		map[string]string{"content-type": "text/html; charset=utf-8"},
		name)
}

// NewRedirectResponder returns a responder redirecting to location.
func NewRedirectResponder(status int, location string) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		rsp := httpmock.NewStringResponse(status, "")
		rsp.Header.Set("Location", location)
		rsp.Request = req
		return rsp, nil
	}
}

type errReader int

func (errReader) Read([]byte) (n int, err error) {
	return 0, errors.New("read error")
}

func (errReader) Close() error {
	return nil
}

// NewIOErrorResponder returns a responder whose body fails on read.
func NewIOErrorResponder(status int, headers map[string]string) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		rsp := httpmock.NewBytesResponse(status, []byte{})
		for k, v := range headers {
			rsp.Header.Set(k, v)
		}
		rsp.Request = req
		rsp.Body = errReader(0)
		return rsp, nil
	}
}
