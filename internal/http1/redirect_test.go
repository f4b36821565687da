package http1

import (
	"bytes"
	"io"
	"testing"

	"github.com/pimalaya/io-http/internal/netio"
)

// driveRedirectFollower drives f, feeding each successive response in
// responses to whichever inner SendExchange is currently active. A
// Reset result simply advances to the next canned response, simulating
// the driver opening a fresh transport to the new origin.
func driveRedirectFollower(t *testing.T, f *RedirectFollower, responses []string) (*RedirectResult, error) {
	t.Helper()
	idx := 0
	src := bytes.NewBufferString(responses[idx])

	var completed *netio.IoIntent
	for {
		result, intent, err := f.Resume(completed)
		completed = nil
		if err != nil {
			return nil, err
		}
		if intent == nil {
			if result.Reset != nil {
				idx++
				if idx >= len(responses) {
					t.Fatalf("ran out of canned responses after reset to %v", result.Reset)
				}
				src = bytes.NewBufferString(responses[idx])
				continue
			}
			return result, nil
		}
		switch intent.Kind {
		case netio.KindWriteWanted:
			completed = netio.WriteCompleted(intent.Buffer, len(intent.Buffer.Bytes()))
		case netio.KindReadWanted:
			n, rerr := src.Read(intent.Buffer.Bytes())
			if rerr == io.EOF {
				n = 0
			}
			completed = netio.ReadCompleted(intent.Buffer, n)
		default:
			t.Fatalf("unexpected intent kind %s", intent.Kind)
		}
	}
}

func TestRedirectFollowerNonRedirectPassesThrough(t *testing.T) {
	req := newTestRequest(t, "GET", "http://example.com/")
	f := NewRedirectFollower(req)

	result, err := driveRedirectFollower(t, f, []string{
		"HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Result == nil || result.Result.Response.StatusCode != 200 {
		t.Fatalf("got %+v", result)
	}
}

func TestRedirectFollowerSameOriginReuse(t *testing.T) {
	req := newTestRequest(t, "GET", "http://example.com/old")
	f := NewRedirectFollower(req)

	result, err := driveRedirectFollower(t, f, []string{
		"HTTP/1.1 301 Moved Permanently\r\nLocation: /new\r\nContent-Length: 0\r\n\r\n" +
			"HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Result == nil || result.Result.Response.StatusCode != 200 {
		t.Fatalf("got %+v", result)
	}
}

func TestRedirectFollowerCrossOriginResets(t *testing.T) {
	req := newTestRequest(t, "GET", "http://example.com/old")
	f := NewRedirectFollower(req)

	result, err := driveRedirectFollower(t, f, []string{
		"HTTP/1.1 302 Found\r\nLocation: http://other.example/new\r\nContent-Length: 0\r\n\r\n",
		"HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Result == nil || result.Result.Response.StatusCode != 200 {
		t.Fatalf("got %+v", result)
	}
}

func TestRedirectFollowerMissingLocation(t *testing.T) {
	req := newTestRequest(t, "GET", "http://example.com/")
	f := NewRedirectFollower(req)

	_, err := driveRedirectFollower(t, f, []string{
		"HTTP/1.1 302 Found\r\nContent-Length: 0\r\n\r\n",
	})
	if err != ErrMissingLocationHeader {
		t.Fatalf("got %v", err)
	}
}

func TestRedirectFollowerTooManyRedirects(t *testing.T) {
	req := newTestRequest(t, "GET", "http://example.com/")
	f := NewRedirectFollower(req)

	loop := "HTTP/1.1 302 Found\r\nLocation: /\r\nContent-Length: 0\r\n\r\n"
	_, err := driveRedirectFollower(t, f, []string{loop + loop + loop + loop + loop})
	if err != ErrTooManyRedirects {
		t.Fatalf("got %v", err)
	}
}
