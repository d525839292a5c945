package host

import (
	"context"
	"sync"
	"testing"

	"github.com/oadl/heatsheet/pkg/render"
)

func TestContainerMountReplaces(t *testing.T) {
	c := NewContainer("viz")

	if _, _, ok := c.Snapshot(); ok {
		t.Error("fresh container should have nothing mounted")
	}

	first := &render.Tree{State: render.StateEmpty, Message: render.EmptyMessage}
	c.Mount(first, []byte("first"))
	second := &render.Tree{State: render.StatePopulated}
	c.Mount(second, []byte("second"))

	tree, artifact, ok := c.Snapshot()
	if !ok {
		t.Fatal("Snapshot after mount should succeed")
	}
	if tree != second || string(artifact) != "second" {
		t.Error("Mount must fully replace prior content")
	}
	if c.Generation() != 2 {
		t.Errorf("Generation = %d, want 2", c.Generation())
	}
}

func TestContainerSnapshotCopies(t *testing.T) {
	c := NewContainer("viz")
	c.Mount(&render.Tree{State: render.StateEmpty}, []byte("abc"))

	_, artifact, _ := c.Snapshot()
	artifact[0] = 'X'

	_, again, _ := c.Snapshot()
	if string(again) != "abc" {
		t.Error("Snapshot must return a copy of the mounted artifact")
	}
}

func TestContainerConcurrentMounts(t *testing.T) {
	c := NewContainer("viz")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Mount(&render.Tree{State: render.StatePopulated}, []byte("x"))
			c.Snapshot()
		}()
	}
	wg.Wait()

	if c.Generation() != 20 {
		t.Errorf("Generation = %d, want 20", c.Generation())
	}
}

func TestBusSingleHandler(t *testing.T) {
	b := NewBus()
	if err := b.SubscribeDataReady(func(context.Context, *Payload) {}); err != nil {
		t.Fatalf("first subscribe: %v", err)
	}
	if err := b.SubscribeDataReady(func(context.Context, *Payload) {}); err != ErrAlreadySubscribed {
		t.Errorf("second subscribe = %v, want ErrAlreadySubscribed", err)
	}
	if err := b.SubscribeDataReady(nil); err == nil {
		t.Error("nil handler should be rejected")
	}
}

func TestBusPublishDispatchesSynchronously(t *testing.T) {
	b := NewBus()
	var got *Payload
	if err := b.SubscribeDataReady(func(_ context.Context, p *Payload) { got = p }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	p := &Payload{Shape: ShapeFlat}
	b.Publish(context.Background(), p)
	if got != p {
		t.Error("Publish should dispatch the payload to the handler before returning")
	}
}

func TestBusPublishWithoutHandler(t *testing.T) {
	// Events before subscription are dropped, not an error.
	NewBus().Publish(context.Background(), &Payload{})
}
