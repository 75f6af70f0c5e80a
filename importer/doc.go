// Package importer loads creator and post reference data from YAML
// fixtures into a catalog.
//
// Records are validated up front, then written in batches. Each batch is
// retried with exponential backoff, and progress is reported to a writer.
package importer
