package mapper

import "context"

// ancestor is one link of the immutable parent-object chain.
type ancestor struct {
	object any
	next   *ancestor
}

// Context describes the node a handler is mapping. A Context is never
// mutated; children receive a new one.
type Context struct {
	// Options is the descriptor in effect for the node.
	Options *Options

	parents *ancestor
	mapper  *Mapper
	ctx     context.Context
}

// ParentObject returns the n-th enclosing object, 0 being the object whose
// property is being mapped. It returns false when n is out of range.
func (c *Context) ParentObject(n int) (any, bool) {
	if n < 0 {
		return nil, false
	}
	p := c.parents
	for ; p != nil && n > 0; n-- {
		p = p.next
	}
	if p == nil {
		return nil, false
	}
	return p.object, true
}

// Depth returns the number of enclosing objects.
func (c *Context) Depth() int {
	n := 0
	for p := c.parents; p != nil; p = p.next {
		n++
	}
	return n
}

// Context returns the context.Context of the outermost call.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Mapper returns the engine running the call.
func (c *Context) Mapper() *Mapper {
	return c.mapper
}

// FromJS maps value as a sibling of the current node, sharing its parents.
func (c *Context) FromJS(value, options, target any, wrap Wrap) (any, error) {
	return c.mapper.fromJS(c.ctx, c.parents, value, options, target, wrap)
}

// ToJS maps value back to plain data as a sibling of the current node.
func (c *Context) ToJS(value, options any) (any, error) {
	return c.mapper.toJS(c.ctx, c.parents, value, options)
}

// within returns the parent chain with object consed onto it.
func (c *Context) within(object any) *ancestor {
	return &ancestor{object: object, next: c.parents}
}
