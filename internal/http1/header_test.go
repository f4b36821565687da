package http1

import (
	"strings"
	"testing"
)

func TestHeaderGetIsCaseInsensitive(t *testing.T) {
	var h Header
	h.Add("Content-Type", "text/plain")

	if got := h.Get("content-type"); got != "text/plain" {
		t.Fatalf("got %q", got)
	}
}

func TestHeaderAddPreservesDuplicatesAndOrder(t *testing.T) {
	var h Header
	h.Add("X-Trace", "a")
	h.Add("X-Trace", "b")
	h.Add("X-Other", "c")

	if got := h.Values("x-trace"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v", got)
	}
	fields := h.Fields()
	if len(fields) != 3 || fields[2].Name != "X-Other" {
		t.Fatalf("order not preserved: %+v", fields)
	}
}

func TestHeaderSetReplacesAllExisting(t *testing.T) {
	var h Header
	h.Add("X-Trace", "a")
	h.Add("X-Trace", "b")
	h.Set("X-Trace", "c")

	if got := h.Values("X-Trace"); len(got) != 1 || got[0] != "c" {
		t.Fatalf("got %v", got)
	}
}

func TestHeaderDelRemovesCaseInsensitively(t *testing.T) {
	var h Header
	h.Add("Content-Length", "5")
	h.Add("Host", "example.com")
	h.Del("content-length")

	if h.Has("Content-Length") {
		t.Fatal("expected Content-Length to be removed")
	}
	if !h.Has("Host") {
		t.Fatal("expected Host to survive")
	}
}

func TestHeaderWriteSerializesInOrder(t *testing.T) {
	var h Header
	h.Add("Host", "example.com")
	h.Add("Accept", "*/*")

	var sb strings.Builder
	if err := h.Write(&sb); err != nil {
		t.Fatal(err)
	}
	want := "Host: example.com\r\nAccept: */*\r\n"
	if sb.String() != want {
		t.Fatalf("got %q, want %q", sb.String(), want)
	}
}

func TestHeaderValidateRejectsBadNameAndValue(t *testing.T) {
	var h Header
	h.Add("Bad Name", "ok")
	h.Add("Good-Name", "bad\x00value")

	err := h.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "invalid header field name") {
		t.Fatalf("missing name error: %v", err)
	}
	if !strings.Contains(err.Error(), "invalid header field value") {
		t.Fatalf("missing value error: %v", err)
	}
}

func TestHeaderCloneIsIndependent(t *testing.T) {
	var h Header
	h.Add("X-A", "1")

	clone := h.Clone()
	clone.Add("X-B", "2")

	if h.Len() != 1 {
		t.Fatalf("original mutated: %d fields", h.Len())
	}
	if clone.Len() != 2 {
		t.Fatalf("clone missing addition: %d fields", clone.Len())
	}
}
