package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/oadl/heatsheet/pkg/host"
	"github.com/oadl/heatsheet/pkg/render"
)

func TestPresenterMountsDraws(t *testing.T) {
	container := host.NewContainer("viz")
	bus := host.NewBus()

	p, err := NewPresenter(testRunner(), container, Options{})
	if err != nil {
		t.Fatalf("NewPresenter: %v", err)
	}
	if err := p.Attach(bus); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	bus.Publish(context.Background(), testPayload())

	tree, artifact, ok := container.Snapshot()
	if !ok {
		t.Fatal("nothing mounted after data-ready event")
	}
	if tree.State != render.StatePopulated {
		t.Errorf("mounted state = %s", tree.State)
	}
	if !strings.Contains(string(artifact), "100m Freestyle") {
		t.Error("mounted artifact missing race title")
	}
}

func TestPresenterLastWriteWins(t *testing.T) {
	container := host.NewContainer("viz")
	p, err := NewPresenter(testRunner(), container, Options{})
	if err != nil {
		t.Fatalf("NewPresenter: %v", err)
	}

	ctx := context.Background()
	p.HandleDataReady(ctx, testPayload())
	p.HandleDataReady(ctx, &host.Payload{Shape: host.ShapeFlat}) // empty draw

	tree, artifact, _ := container.Snapshot()
	if tree.State != render.StateEmpty {
		t.Errorf("mounted state = %s, want the most recent draw", tree.State)
	}
	if !strings.Contains(string(artifact), render.EmptyMessage) {
		t.Error("mounted artifact should be the empty state")
	}
	if container.Generation() != 2 {
		t.Errorf("Generation = %d, want 2", container.Generation())
	}
}

func TestPresenterMountsErrorState(t *testing.T) {
	container := host.NewContainer("viz")
	p, err := NewPresenter(testRunner(), container, Options{})
	if err != nil {
		t.Fatalf("NewPresenter: %v", err)
	}

	p.HandleDataReady(context.Background(), nil)

	tree, _, ok := container.Snapshot()
	if !ok || tree.State != render.StateError {
		t.Errorf("mounted state = %v, want error node", tree)
	}
}
