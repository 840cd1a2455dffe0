package plugin

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
)

// Collection is an ordered set of named plugins.
type Collection struct {
	names   []string
	plugins map[string]Plugin
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{plugins: make(map[string]Plugin)}
}

// Set stores p under name. A replaced plugin keeps its position.
func (c *Collection) Set(name string, p Plugin) {
	if _, exists := c.plugins[name]; !exists {
		c.names = append(c.names, name)
	}

	c.plugins[name] = p
}

// Add stores p under name unless the name is taken, and reports whether it did.
func (c *Collection) Add(name string, p Plugin) bool {
	if _, exists := c.plugins[name]; exists {
		return false
	}

	c.Set(name, p)

	return true
}

// Get returns the plugin stored under name.
func (c *Collection) Get(name string) (Plugin, bool) {
	p, ok := c.plugins[name]

	return p, ok
}

// Names returns the plugin names in insertion order.
func (c *Collection) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of plugins.
func (c *Collection) Len() int {
	return len(c.names)
}

// Startup runs OnStartup of every Starter in order and stops at the first failure.
func (c *Collection) Startup(ctx context.Context) error {
	for _, name := range c.names {
		starter, ok := c.plugins[name].(Starter)
		if !ok {
			continue
		}

		err := starter.OnStartup(ctx)
		if err != nil {
			return fmt.Errorf("starting plugin %s: %w", name, err)
		}
	}

	return nil
}

// Shutdown runs OnShutdown of every Stopper in reverse order. Every plugin is
// stopped; the failures are combined.
func (c *Collection) Shutdown(ctx context.Context) error {
	var errs error

	for i := len(c.names) - 1; i >= 0; i-- {
		name := c.names[i]

		stopper, ok := c.plugins[name].(Stopper)
		if !ok {
			continue
		}

		err := stopper.OnShutdown(ctx)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("stopping plugin %s: %w", name, err))
		}
	}

	return errs
}
