// Package series detects per-season TV records in the scraped source ratings
// and combines seasons sharing one destination entry into a single aggregated
// record. The origin site issues one rating per season while the destination
// carries one entry per show; migrating seasons individually would either
// collide on the identifier or overwrite with only the last season's score,
// so the seasons are averaged into one rating.
package series
