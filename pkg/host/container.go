package host

import (
	"sync"

	"github.com/oadl/heatsheet/pkg/render"
)

// Container is an explicit mount-point handle. It is a parameter, not a
// package singleton, so multiple instances and test harnesses can mount
// independently.
//
// Mount fully replaces the previous content; overlapping draws are
// last-write-wins. The container is the only state shared between
// draws, so a single mutex suffices.
type Container struct {
	mu         sync.RWMutex
	name       string
	tree       *render.Tree
	artifact   []byte
	generation uint64
}

// NewContainer creates an empty container. The name is display metadata
// (the host element this handle stands for).
func NewContainer(name string) *Container {
	return &Container{name: name}
}

// Name returns the container's host element name.
func (c *Container) Name() string { return c.name }

// Mount replaces the container's entire content with the given tree and
// its rendered artifact. Nothing of the prior mount survives.
func (c *Container) Mount(tree *render.Tree, artifact []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree = tree
	c.artifact = artifact
	c.generation++
}

// Snapshot returns the currently mounted tree and artifact. The third
// return reports whether anything has been mounted yet. The artifact is
// copied so callers cannot mutate mounted content.
func (c *Container) Snapshot() (*render.Tree, []byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tree == nil {
		return nil, nil, false
	}
	artifact := make([]byte, len(c.artifact))
	copy(artifact, c.artifact)
	return c.tree, artifact, true
}

// Generation returns how many mounts have happened. Useful for tests
// asserting last-write-wins behavior.
func (c *Container) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}
