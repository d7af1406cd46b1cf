// Package opregistry maps the operation type names used in an HCL graph
// description (see internal/hclgraph) to the compiled Go functions that
// implement them. It exists so that a graph description can name an
// operation by string ("http_check", "print", ...) without the loader
// needing to know about any particular operation's Go package.
package opregistry
