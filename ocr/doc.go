// Package ocr defines the engine-agnostic recognition contracts for the
// ingestion pipeline: a catalog of recognition languages, a scoped Session
// opened per pipeline invocation, and the error taxonomy engines report
// through. Providers (see ocr/tesseract) stay behind these interfaces so the
// pipeline never depends on a concrete engine.
package ocr
