package httpapi

import (
	"context"
)

// serverBaseCtx is a process-level context canceled when shutdown begins.
// Once it is done /readyz reports 503 so load balancers stop routing here.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context. Nil resets it.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}
