// Package services implements the core pipeline logic: discovery of new
// source items, processing of pending records, and the operator-facing
// document read surface. Services depend only on ports; adapters are
// injected at construction.
package services
