package memqueue

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestMemPublisher_RecordsInOrder(t *testing.T) {
	nopLogger := zerolog.Nop()
	pub := NewPublisher(&nopLogger)

	for _, username := range []string{"aliceSmith", "bobJones"} {
		if err := pub.Publish(context.Background(), username); err != nil {
			t.Fatalf("Publish(%s) failed: %v", username, err)
		}
	}

	got := pub.Published()
	if len(got) != 2 || got[0] != "aliceSmith" || got[1] != "bobJones" {
		t.Errorf("Published: got %v, want [aliceSmith bobJones]", got)
	}
}

func TestMemPublisher_ConcurrentPublish(t *testing.T) {
	nopLogger := zerolog.Nop()
	pub := NewPublisher(&nopLogger)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pub.Publish(context.Background(), "user")
		}()
	}
	wg.Wait()

	if got := len(pub.Published()); got != 50 {
		t.Errorf("Published count: got %d, want 50", got)
	}
}
