package pipeline

import (
	"context"

	"github.com/oadl/heatsheet/pkg/host"
	"github.com/oadl/heatsheet/pkg/observability"
	"github.com/oadl/heatsheet/pkg/render"
)

// Presenter connects the pipeline to a host surface: it handles
// data-ready events by drawing the payload and mounting the result into
// the container. The container's prior content is fully replaced on
// every event; overlapping events are last-write-wins.
type Presenter struct {
	runner    *Runner
	container *host.Container
	opts      Options
}

// NewPresenter creates a presenter drawing into container. The first
// entry of opts.Formats (default HTML) is the format mounted into the
// container; remaining formats are still rendered and cached.
func NewPresenter(runner *Runner, container *host.Container, opts Options) (*Presenter, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Presenter{runner: runner, container: container, opts: opts}, nil
}

// Attach subscribes the presenter as the bus's single data-ready
// handler.
func (p *Presenter) Attach(bus *host.Bus) error {
	return bus.SubscribeDataReady(p.HandleDataReady)
}

// HandleDataReady draws one payload and mounts the output. It never
// fails: every invocation ends with exactly one of the three terminal
// outputs mounted.
func (p *Presenter) HandleDataReady(ctx context.Context, payload *host.Payload) {
	mountFormat := p.opts.Formats[0]

	result, err := p.runner.Draw(ctx, payload, p.opts)
	if err != nil {
		// Options were validated in NewPresenter; reaching this means a
		// programming error. Honor the contract anyway.
		tree := render.Error(err)
		p.mount(ctx, tree, RenderTree(tree, mountFormat, p.opts))
		return
	}
	p.mount(ctx, result.Tree, result.Artifacts[mountFormat])
}

func (p *Presenter) mount(ctx context.Context, tree *render.Tree, artifact []byte) {
	p.container.Mount(tree, artifact)
	observability.Draw().OnMount(ctx, p.container.Name(), len(artifact))
}
