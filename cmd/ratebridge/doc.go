// Command ratebridge migrates scraped ratings from one site's 1-5 scale to
// another site's 1-10 scale: it matches source records against the
// destination catalog, builds a reviewable migration plan, and replays the
// plan through a pluggable submission command with resume support.
package main
