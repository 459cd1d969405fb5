package routing

const (
	DIJKSTRA = "dijkstra"
	ASTAR    = "astar"

	// settled vertices between two context checks
	CANCEL_CHECK_INTERVAL = 1024

	// upper bound of the initial queue capacity, larger searches grow the queue on demand
	MAX_HEAP_PREALLOCATE = 1 << 16
)
