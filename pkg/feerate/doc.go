// Package feerate implements the composite fee-rate input: a rate kind
// selector plus up to three decimal sub-inputs (amount, minimum, maximum).
//
// An Input runs in one of two modes fixed at construction. Uncontrolled
// inputs own their state and apply every edit locally. Controlled inputs
// only display what the caller pushes through SetValue; edits are reported
// through the change callback and otherwise ignored. In both modes the
// callback receives the complete merged value.
//
// Validation is not performed by the input. Validate is a pure function and
// is also registered with the validation package under the name "feeRate".
package feerate
