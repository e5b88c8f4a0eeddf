// Package selector parses the selector mini-language used to address table
// lines and columns.
//
// Three grammars share one engine:
//
//	force-parse   N[-M]<l|c><s|i|f>        1-2li,4lf
//	subtable      N[-M]<l|c>               1-3l,2-4c,5l
//	color         N[-M]<r|g|b|y|x|w><l|c>  1rl,3gl,5bl,2-4yc
//
// Every comma separated token is classified against an ordered list of
// shapes; the first matching shape wins, so a token that is wrong in two
// ways is always reported the same way. Well-formed tokens are expanded
// into (index, attribute) pairs, inverted ranges included, and the result is
// sorted, deduplicated and checked for conflicting attributes. Parsing is all
// or nothing: the first failure is returned as a *diag.Diagnostic.
package selector
