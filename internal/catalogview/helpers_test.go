package catalogview_test

import "time"

const (
	defaultWait = 2 * time.Second
	tick        = 5 * time.Millisecond
)
