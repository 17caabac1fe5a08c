// Package sim drives particle fields without a display: a Simulator renders
// one seeded field on a headless host and keeps snapshots and metrics, and
// an Ensemble runs several seeds in parallel.
package sim
