package out

// TickDriver owns the single repeating trigger of an active session.
// Start replaces any running trigger; after Stop returns no further tick is
// delivered.
type TickDriver interface {
	Start(run uint64, tick func(run uint64))
	Stop()
}
