// Package openapi derives field groups from the JSON request body of an
// OpenAPI operation. Documents are loaded with kin-openapi; per-property
// overrides live under the "x-formkit" extension:
//
//	x-formkit:
//	  valueKind: feeRate
//	  createHidden: true
//	  editDisabled: true
//	  label: 费率
package openapi
