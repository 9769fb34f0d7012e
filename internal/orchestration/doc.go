// Package orchestration runs one or more π estimators, wires their progress
// to a reporter and decides the outcome of a run. It decouples business logic
// from presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
