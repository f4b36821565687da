package iohttp_test

import (
	"bytes"
	"io"
	"testing"

	iohttp "github.com/pimalaya/io-http"
	"github.com/pimalaya/io-http/internal/netio"
)

// driveExchange is a minimal in-memory driver for the public package's
// SendExchange, exercising it the way cmd/sendhttp drives one over a
// real connection. Test code may reach into internal/netio directly
// (it lives under this module), unlike an external consumer of the
// public iohttp package.
func driveExchange(t *testing.T, ex *iohttp.SendExchange, resp string) *iohttp.SendResult {
	t.Helper()
	src := bytes.NewBufferString(resp)

	var completed *iohttp.IoIntent
	for {
		result, intent, err := ex.Resume(completed)
		if err != nil {
			t.Fatal(err)
		}
		if intent == nil {
			return result
		}
		if intent.Kind == netio.KindWriteWanted {
			completed = netio.WriteCompleted(intent.Buffer, len(intent.Buffer.Bytes()))
			continue
		}
		n, rerr := src.Read(intent.Buffer.Bytes())
		if rerr == io.EOF {
			n = 0
		}
		completed = netio.ReadCompleted(intent.Buffer, n)
	}
}

func TestPublicSendExchangeRoundTrip(t *testing.T) {
	uri, err := iohttp.ParseURI("http://example.com/")
	if err != nil {
		t.Fatal(err)
	}
	var header iohttp.Header
	header.Add("Host", "example.com")

	req, err := iohttp.NewRequest("GET", uri, iohttp.HTTP11, header, nil)
	if err != nil {
		t.Fatal(err)
	}

	ex := iohttp.NewSendExchange(req)
	result := driveExchange(t, ex, "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok")

	if result.Response.StatusCode != 200 {
		t.Fatalf("got status %d", result.Response.StatusCode)
	}
	if string(result.Response.Body) != "ok" {
		t.Fatalf("got body %q", result.Response.Body)
	}
}

func TestPublicRedirectFollowerFollowsSameOriginHop(t *testing.T) {
	uri, err := iohttp.ParseURI("http://example.com/old")
	if err != nil {
		t.Fatal(err)
	}
	var header iohttp.Header
	header.Add("Host", "example.com")

	req, err := iohttp.NewRequest("GET", uri, iohttp.HTTP11, header, nil)
	if err != nil {
		t.Fatal(err)
	}

	f := iohttp.NewRedirectFollower(req)
	resp := "HTTP/1.1 301 Moved Permanently\r\nLocation: /new\r\nContent-Length: 0\r\n\r\n" +
		"HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok"
	src := bytes.NewBufferString(resp)

	var completed *iohttp.IoIntent
	for {
		result, intent, err := f.Resume(completed)
		if err != nil {
			t.Fatal(err)
		}
		if intent == nil {
			if result.Result.Response.StatusCode != 200 {
				t.Fatalf("got status %d", result.Result.Response.StatusCode)
			}
			return
		}
		if intent.Kind == netio.KindWriteWanted {
			completed = netio.WriteCompleted(intent.Buffer, len(intent.Buffer.Bytes()))
			continue
		}
		n, rerr := src.Read(intent.Buffer.Bytes())
		if rerr == io.EOF {
			n = 0
		}
		completed = netio.ReadCompleted(intent.Buffer, n)
	}
}
