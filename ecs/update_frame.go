package ecs

// UpdateFrame carries the per-frame context handed to every system.
type UpdateFrame struct {
	// DeltaTime is the elapsed time of the frame in seconds.
	DeltaTime float64
	// Tick counts frames executed by the scheduler, starting at 1.
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}
