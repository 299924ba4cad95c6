// Package orchestrator wires form sources (named definitions or OpenAPI
// operations) through the field-tree renderer into a registered output
// renderer, for callers that prefer a single entry point.
package orchestrator
