// Package rx implements a POSIX-style backtracking regular expression
// engine in the Henry Spencer regexp.c lineage, built from scratch
// because the standard library regexp (RE2, no backtracking, no word
// anchors) cannot express this contract: `\<`/`\>` word-boundary
// anchors, exact 10-slot capture numbering, and a replace-template
// syntax keyed on those slots.
package rx
