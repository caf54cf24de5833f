package curies

// uriTrie is a byte-level prefix tree over registered URI prefix strings
// (canonical and synonym). It answers exact-match lookups and
// longest-prefix queries: the deepest inserted key that is a literal
// string prefix of the query wins, so a short coincidental namespace can
// never shadow a longer, more specific one.
//
// Scale is a few thousand keys at most, so no radix compression is done.
type uriTrie struct {
	root *trieNode
}

type trieNode struct {
	children map[byte]*trieNode
	record   *Record // non-nil when an inserted key ends at this node
}

func newURITrie() *uriTrie {
	return &uriTrie{root: &trieNode{}}
}

// insert registers key with the given record, overwriting any record
// previously stored at the same key.
func (t *uriTrie) insert(key string, rec *Record) {
	node := t.root
	for i := 0; i < len(key); i++ {
		b := key[i]
		if node.children == nil {
			node.children = make(map[byte]*trieNode)
		}
		child, ok := node.children[b]
		if !ok {
			child = &trieNode{}
			node.children[b] = child
		}
		node = child
	}
	node.record = rec
}

// get returns the record stored at exactly key.
func (t *uriTrie) get(key string) (*Record, bool) {
	node := t.root
	for i := 0; i < len(key); i++ {
		child, ok := node.children[key[i]]
		if !ok {
			return nil, false
		}
		node = child
	}
	if node.record == nil {
		return nil, false
	}
	return node.record, true
}

// contains reports whether key was inserted.
func (t *uriTrie) contains(key string) bool {
	_, ok := t.get(key)
	return ok
}

// longestPrefix returns the record stored at the longest inserted key
// that is a literal string prefix of query.
func (t *uriTrie) longestPrefix(query string) (*Record, bool) {
	node := t.root
	var best *Record
	if node.record != nil {
		best = node.record
	}
	for i := 0; i < len(query); i++ {
		child, ok := node.children[query[i]]
		if !ok {
			break
		}
		node = child
		if node.record != nil {
			best = node.record
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}
