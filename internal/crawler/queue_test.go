package crawler

import (
	"fmt"
	"testing"
)

func TestFrontierQueueFIFO(t *testing.T) {
	q := NewFrontierQueue()

	q.Enqueue(FrontierEntry{URL: "https://example.com/a", Depth: 0})
	q.Enqueue(FrontierEntry{URL: "https://example.com/b", Depth: 1})
	q.Enqueue(FrontierEntry{URL: "https://example.com/c", Depth: 1})

	if q.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", q.Len())
	}

	want := []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}
	for i, expected := range want {
		entry, ok := q.Dequeue()
		if !ok {
			t.Fatalf("Dequeue %d returned ok=false", i)
		}
		if entry.URL != expected {
			t.Errorf("Dequeue %d = %s, expected %s", i, entry.URL, expected)
		}
	}

	if _, ok := q.Dequeue(); ok {
		t.Error("Dequeue on empty queue returned ok=true")
	}
	if q.Len() != 0 {
		t.Errorf("Len() after draining = %d, expected 0", q.Len())
	}
}

func TestFrontierQueueInterleaved(t *testing.T) {
	q := NewFrontierQueue()

	q.Enqueue(FrontierEntry{URL: "a", Depth: 0})
	q.Enqueue(FrontierEntry{URL: "b", Depth: 0})

	if entry, _ := q.Dequeue(); entry.URL != "a" {
		t.Errorf("first Dequeue = %s, expected a", entry.URL)
	}

	q.Enqueue(FrontierEntry{URL: "c", Depth: 1})

	if entry, _ := q.Dequeue(); entry.URL != "b" {
		t.Errorf("second Dequeue = %s, expected b", entry.URL)
	}
	if entry, _ := q.Dequeue(); entry.URL != "c" {
		t.Errorf("third Dequeue = %s, expected c", entry.URL)
	}
}

func TestFrontierQueuePreservesOrderAcrossCompaction(t *testing.T) {
	q := NewFrontierQueue()

	// Enough traffic to force the backing slice to compact.
	const total = 200
	for i := 0; i < total; i++ {
		q.Enqueue(FrontierEntry{URL: fmt.Sprintf("url-%03d", i), Depth: 0})
	}

	for i := 0; i < total; i++ {
		entry, ok := q.Dequeue()
		if !ok {
			t.Fatalf("Dequeue %d returned ok=false", i)
		}
		if expected := fmt.Sprintf("url-%03d", i); entry.URL != expected {
			t.Fatalf("Dequeue %d = %s, expected %s", i, entry.URL, expected)
		}
	}
}

func TestVisitedSet(t *testing.T) {
	v := NewVisitedSet()

	if v.Contains("https://example.com/") {
		t.Error("empty set claims to contain a URL")
	}

	v.Mark("https://example.com/")
	if !v.Contains("https://example.com/") {
		t.Error("marked URL not found")
	}
	if v.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", v.Len())
	}

	// Marking twice must not grow the set.
	v.Mark("https://example.com/")
	if v.Len() != 1 {
		t.Errorf("Len() after duplicate Mark = %d, expected 1", v.Len())
	}
}
