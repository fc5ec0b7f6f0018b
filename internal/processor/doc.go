// Package processor contains the core workflow logic for downloading
// pronunciation audio. It composes the template scanner, field resolver,
// retrieval aggregator, review step and committer into the three download
// flows (visible side, whole note, whole note with manual review) and
// maps their outcomes onto terminal states. This package serves as the
// main coordinator between all other components.
package processor
