// Package plan turns the scraped source ratings and the destination catalog
// into a migration plan: the ordered list of ratings still to apply, the
// records the destination already carries, and the leftovers no match could
// be found for. Plans are plain JSON so a run can be inspected and resumed.
package plan
