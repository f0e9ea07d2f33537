// Package ratings defines the scraped rating records exchanged with the
// scraping side, their validation rules, the 1-5 to 1-10 scale conversion,
// and JSON ingestion of the export files.
package ratings
