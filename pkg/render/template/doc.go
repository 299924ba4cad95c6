// Package template defines the template engine seam output renderers use.
// The pongo2 implementation lives in the gotemplate subpackage.
package template
