package jsfilter

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyType is the role of a key or scope entry.
type KeyType int

const (
	KeyDefault KeyType = iota
	KeyValue
	KeyObject
	KeyList
)

func (k KeyType) String() string {
	switch k {
	case KeyValue:
		return "value"
	case KeyObject:
		return "object"
	case KeyList:
		return "list"
	default:
		return "default"
	}
}

// scopeEntry is one open object or list and the key that introduced it.
type scopeEntry struct {
	name  string
	named bool
	kind  KeyType
}

// pathBuilder tracks open scopes and synthesizes key paths.
type pathBuilder struct {
	fullPath     bool
	leadingSlash bool
	scopes       []scopeEntry
	// indexes holds one element counter per open list, starting at -1.
	indexes []int
}

func newPathBuilder(fullPath, leadingSlash bool) *pathBuilder {
	return &pathBuilder{fullPath: fullPath, leadingSlash: leadingSlash}
}

func (b *pathBuilder) depth() int { return len(b.scopes) }

// element records that a new element starts in the directly enclosing
// list, if any.
func (b *pathBuilder) element() {
	if n := len(b.scopes); n > 0 && b.scopes[n-1].kind == KeyList {
		b.indexes[len(b.indexes)-1]++
	}
}

func (b *pathBuilder) enterObject(key string, hasKey bool) {
	b.element()
	b.scopes = append(b.scopes, scopeEntry{name: key, named: hasKey, kind: KeyObject})
}

func (b *pathBuilder) enterList(key string, hasKey bool) {
	b.element()
	b.indexes = append(b.indexes, -1)
	b.scopes = append(b.scopes, scopeEntry{name: key, named: hasKey, kind: KeyList})
}

// exit closes the innermost scope, which must be of the given kind.
func (b *pathBuilder) exit(kind KeyType) error {
	n := len(b.scopes)
	if n == 0 {
		return fmt.Errorf("%w: %s end without start", ErrUnbalanced, kind)
	}
	if top := b.scopes[n-1]; top.kind != kind {
		return fmt.Errorf("%w: %s end closes an open %s", ErrUnbalanced, kind, top.kind)
	}
	b.scopes = b.scopes[:n-1]
	if kind == KeyList {
		b.indexes = b.indexes[:len(b.indexes)-1]
	}
	return nil
}

// arrayKey joins the open list counters, outermost first.
func (b *pathBuilder) arrayKey() string {
	parts := make([]string, len(b.indexes))
	for i, idx := range b.indexes {
		parts[i] = "array:" + strconv.Itoa(idx)
	}
	return strings.Join(parts, "/")
}

// path resolves the logical key path of a value. The element counter must
// already have been advanced for keyless list values.
func (b *pathBuilder) path(key string, hasKey bool) (string, bool) {
	if !b.fullPath {
		// every element of a list shares the key of that list
		if n := len(b.scopes); n > 0 && b.scopes[n-1].kind == KeyList {
			return b.scopes[n-1].name, b.scopes[n-1].named
		}
		return key, hasKey
	}

	if !hasKey && len(b.indexes) > 0 {
		key, hasKey = b.arrayKey(), true
	}

	var sb strings.Builder
	for _, s := range b.scopes {
		if s.named {
			sb.WriteString("/")
			sb.WriteString(s.name)
		}
	}
	if hasKey && key != "" {
		sb.WriteString("/")
		sb.WriteString(key)
	}

	p := sb.String()
	if !b.leadingSlash {
		p = strings.TrimPrefix(p, "/")
	}
	return p, true
}
