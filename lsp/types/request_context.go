package types

import (
	"github.com/tliron/glsp"
)

// RequestContext is what every LSP handler receives: the server state, the
// glsp context of the message being handled, and the non-fatal warnings
// the handler collected. The middleware logs those warnings once the
// handler returns.
type RequestContext struct {
	Server   ServerContext
	GLSP     *glsp.Context
	warnings []error
}

// NewRequestContext creates a new request context
func NewRequestContext(server ServerContext, glsp *glsp.Context) *RequestContext {
	return &RequestContext{
		Server: server,
		GLSP:   glsp,
	}
}

// AddWarning records err for the middleware; nil is ignored.
func (r *RequestContext) AddWarning(err error) {
	if err != nil {
		r.warnings = append(r.warnings, err)
	}
}

// Warnings returns the collected warnings, or nil.
func (r *RequestContext) Warnings() []error {
	return r.warnings
}

// HasWarnings reports whether any warning was collected
func (r *RequestContext) HasWarnings() bool {
	return len(r.warnings) > 0
}

// PushContext returns the client context diagnostics are pushed through,
// or nil when the client pulls them or no client is connected yet.
func (r *RequestContext) PushContext() *glsp.Context {
	if r.Server == nil || r.Server.UsePullDiagnostics() {
		return nil
	}
	return r.Server.GLSPContext()
}
