package rediswire

import (
	"io"
	"reflect"
	"sync"
)

// CloseableRegistry tracks open resources that must be released when their
// owning connection closes. It is safe for concurrent use.
//
// Resources are matched by identity: comparable closers by equality, func
// and other reference-kind closers by their referent. Closers whose dynamic
// type is an uncomparable struct cannot be matched individually; they can
// be added but not removed one by one.
type CloseableRegistry struct {
	mu      sync.Mutex
	entries []io.Closer
}

// NewCloseableRegistry creates an empty registry.
func NewCloseableRegistry() *CloseableRegistry {
	return &CloseableRegistry{}
}

// Add records the given resources. Already tracked resources are not
// duplicated.
func (r *CloseableRegistry) Add(closeables ...io.Closer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range closeables {
		if r.indexOf(c) < 0 {
			r.entries = append(r.entries, c)
		}
	}
}

// Remove forgets the given resources.
func (r *CloseableRegistry) Remove(closeables ...io.Closer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range closeables {
		if i := r.indexOf(c); i >= 0 {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
		}
	}
}

// Contains reports whether c is currently tracked.
func (r *CloseableRegistry) Contains(c io.Closer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexOf(c) >= 0
}

// Len returns the number of tracked resources.
func (r *CloseableRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// indexOf returns the position of c, or -1. Caller holds mu.
func (r *CloseableRegistry) indexOf(c io.Closer) int {
	for i, entry := range r.entries {
		if sameCloser(entry, c) {
			return i
		}
	}
	return -1
}

// sameCloser reports whether a and b identify the same resource without
// ever comparing uncomparable dynamic types with ==.
func sameCloser(a, b io.Closer) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	switch va := reflect.ValueOf(a); va.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice:
		return va.Pointer() == reflect.ValueOf(b).Pointer()
	}
	return false
}
