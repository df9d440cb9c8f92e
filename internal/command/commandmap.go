package command

import (
	"sort"
	"strings"
)

// Handler handles the raw argument string of one command.
type Handler func(argument string)

// CommandMap dispatches command names to handlers by exact match.
type CommandMap struct {
	handlers       map[string]Handler
	defaultHandler Handler
}

// NewCommandMap creates an empty map whose default handler ignores input.
func NewCommandMap() *CommandMap {
	return &CommandMap{
		handlers:       make(map[string]Handler),
		defaultHandler: func(string) {},
	}
}

// SetDefaultCommand sets the handler for unrecognized names.
func (c *CommandMap) SetDefaultCommand(handler Handler) *CommandMap {
	if handler == nil {
		violate("nil default command")
	}
	c.defaultHandler = handler
	return c
}

// AddCommand registers handler under name.
// Panics if name is empty or already registered.
func (c *CommandMap) AddCommand(name string, handler Handler) *CommandMap {
	if name == "" {
		violate("empty command name")
	}
	if handler == nil {
		violate("nil handler for command %q", name)
	}
	if _, exists := c.handlers[name]; exists {
		violate("command already registered: %s", name)
	}
	c.handlers[name] = handler
	return c
}

// Run invokes the handler registered for name with argument. Unknown names go
// to the default handler, which receives the name and argument as typed.
func (c *CommandMap) Run(name, argument string) {
	if handler, ok := c.handlers[name]; ok {
		handler(argument)
		return
	}
	c.defaultHandler(strings.TrimSpace(name + " " + argument))
}

// Has reports whether name is registered.
func (c *CommandMap) Has(name string) bool {
	_, ok := c.handlers[name]
	return ok
}

// Names returns the registered command names in sorted order.
func (c *CommandMap) Names() []string {
	names := make([]string, 0, len(c.handlers))
	for name := range c.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Split separates a raw input line into its command name and argument. The
// argument keeps its inner spacing; only the separator is removed.
func Split(line string) (name, argument string) {
	line = strings.TrimSpace(line)
	idx := strings.IndexFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimLeft(line[idx:], " \t")
}
