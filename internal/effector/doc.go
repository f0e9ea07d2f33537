// Package effector applies one rating to the destination site. The engine
// itself never talks to the site; it hands each plan entry to an Effector
// and interprets the outcome. The shipped implementation shells out to a
// user-supplied command so the actual submission mechanism (browser
// automation, an API client, a fake for rehearsal) stays pluggable.
package effector
