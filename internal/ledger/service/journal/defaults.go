package journal

import "time"

const (
	blockBatcherCapacity      = 500
	blockBatcherFlushInterval = 2 * time.Second
	blockBatcherRPS           = 20
)
