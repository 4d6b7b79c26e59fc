package middleware

import "github.com/danielgtaylor/huma/v2"

// Container collects the middleware chain for one handler at wiring time.
// GetAllAndClear hands the chain over and resets, so the same container can
// be reused for the next handler.
type Container struct {
	chain huma.Middlewares
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Add(mw func(huma.Context, func(huma.Context))) {
	c.chain = append(c.chain, mw)
}

func (c *Container) GetAllAndClear() huma.Middlewares {
	chain := c.chain
	c.chain = nil
	return chain
}
