package http

import (
	"reflect"
	"testing"
)

func TestHeaderCaseInsensitive(t *testing.T) {
	h := NewHeader()
	h.Set("content-type", "text/plain")

	for _, key := range []string{"Content-Type", "content-type", "CONTENT-TYPE"} {
		if got := h.Get(key); got != "text/plain" {
			t.Errorf("Get(%q): expected text/plain, got %q", key, got)
		}
	}

	h.Set("CONTENT-TYPE", "text/html")
	if len(h) != 1 {
		t.Errorf("Expected a single entry, got %d", len(h))
	}

	h.Del("Content-type")
	if h.Has("content-type") {
		t.Error("Header should be deleted")
	}
}

func TestHeaderAdd(t *testing.T) {
	h := NewHeader()
	h.Add("Accept", "text/html")
	h.Add("accept", "application/json")

	if got := h.Get("Accept"); got != "text/html, application/json" {
		t.Errorf("Expected joined values, got %q", got)
	}
}

func TestHeaderCloneAndKeys(t *testing.T) {
	h := NewHeader()
	h.Set("X-B", "2")
	h.Set("X-A", "1")

	c := h.Clone()
	c.Set("X-C", "3")

	if h.Has("X-C") {
		t.Error("Clone must not share storage")
	}
	if !reflect.DeepEqual(c.Keys(), []string{"X-A", "X-B", "X-C"}) {
		t.Errorf("Unexpected key order %v", c.Keys())
	}
	if Header(nil).Clone() != nil {
		t.Error("Clone of nil header should be nil")
	}
}
