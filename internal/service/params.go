package service

import "time"

// EvaluateParams tunes one evaluation pass.
type EvaluateParams struct {
	Sort string // "dollars" (default) | "co2"
}

// RunFilter supports history filtering by time range with a bounded page.
type RunFilter struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Limit int       // 0 means the default page size
}
