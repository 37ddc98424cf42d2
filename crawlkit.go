// Package crawlkit provides a bounded-resource web crawl engine.
// It fetches pages resiliently under transient failure, follows links or
// pagination controls within a configured scope, and serializes the
// collected results to disk.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, fs/).
package crawlkit
