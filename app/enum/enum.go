// Package enum defines enumerated types shared across authcheck packages.
package enum

//go:generate go run github.com/go-pkgz/enum@latest -type outcome -lower
//go:generate go run github.com/go-pkgz/enum@latest -type runStatus -lower

// outcome is the final state of a single scenario execution.
type outcome int

const (
	outcomePassed outcome = iota + 1
	outcomeFailed
	outcomeSkipped
)

// runStatus is the lifecycle state of a suite run.
type runStatus int

const (
	runStatusRunning runStatus = iota + 1
	runStatusFinished
	runStatusCanceled
)
