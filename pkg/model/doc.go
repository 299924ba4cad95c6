// Package model defines the declarative configuration tree consumed by the
// field-tree renderer (FieldGroup, FieldNode, nested sub-groups) and the
// Element descriptors it produces. Configuration values are read-only during
// a render: the renderer copies what it decorates and never writes back into
// a FieldNode.
//
// Widget-specific passthrough options live in the Extra map.
package model
