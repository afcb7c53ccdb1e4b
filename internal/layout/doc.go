// Package layout is the pane arrangement engine behind the board.
//
// A layout is a tree rooted at a Bin. A Bin holds exactly one content node:
// a Split (two Bins side by side or stacked), a Tabs container (an ordered list
// of Bins shown one at a time) or a leaf wrapping a content module instance.
// Nodes live in an arena owned by Tree and are addressed by NodeID; parent links
// are plain lookups, so there are no reference cycles.
//
// The tree round-trips through a compact descriptor string:
//
//	node        := split | tabs | content
//	split       := '{' ('D'|'d') ('h'|'v') number ('p'|'%') node node '}'
//	tabs        := '[' node* ']'
//	content     := '(' module-name ':' fragment ')'
//
// Every mutation is atomic: it either applies completely or returns an error
// and leaves the tree as it was.
package layout
