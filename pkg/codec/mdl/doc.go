// Package mdl implements the recursive-descent reader for the MDL
// constant grammar: the textual notation used by the configuration/scripting
// layer to write a Variant literally: bare numbers, TRUE/FALSE/EMPTY
// keywords, quoted strings with C-escapes, x/b/d-prefixed byte literals,
// and brace-delimited collections and maps. A hand-rolled byte scanner
// feeds a recursive-descent grammar reader.
package mdl
