// Package field decides which note fields take part in an audio download.
// The resolver pairs a destination field (one whose name marks it as an
// audio field) with the field holding the source text, following the
// naming conventions of common deck layouts. The scanner finds destination
// fields referenced by the currently visible card template.
package field
