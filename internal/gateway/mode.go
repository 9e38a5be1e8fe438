package gateway

// Mode is the gateway's connectivity state. It is owned by the Gateway
// instance rather than a package global so transitions stay testable and do
// not leak across sessions.
type Mode string

const (
	// ModeLive serves reads and writes from the remote store.
	ModeLive Mode = "live"
	// ModeOffline serves reads from the local snapshot cache (falling back
	// to the built-in datasets) and drops writes with a log entry.
	ModeOffline Mode = "offline"
	// ModeDegraded serves reads from the built-in datasets only and turns
	// writes into no-ops. Entered when a required table is missing.
	ModeDegraded Mode = "degraded"
)

// Mode returns the current connectivity state.
func (g *Gateway) Mode() Mode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode
}

// SchemaWarning reports whether the remote schema was detected to be older
// than this build expects. Operation continues; the UI surfaces the warning.
func (g *Gateway) SchemaWarning() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.schemaWarning
}

// Degraded and offline are sticky: once the session has fallen back it never
// self-promotes to live, so repeated calls behave predictably.
func (g *Gateway) enterOffline(reason error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode != ModeLive {
		return
	}
	g.mode = ModeOffline
	g.logger.Warn("remote store unreachable, working offline", logAttrError(reason))
}

func (g *Gateway) enterDegraded(reason error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode == ModeDegraded {
		return
	}
	g.mode = ModeDegraded
	g.logger.Warn("required table missing, entering degraded mode", logAttrError(reason))
}

func (g *Gateway) flagSchemaWarning() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.schemaWarning = true
}

func (g *Gateway) extendedEnabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.includeExtended
}

// disableExtended drops the newer columns from every later statement in the
// session and flags the schema warning.
func (g *Gateway) disableExtended() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.includeExtended = false
	g.schemaWarning = true
}
