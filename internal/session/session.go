// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session keeps per-browser-session context for the offline API.
//
// A [Store] is a bounded LRU with lazy TTL expiry. It replaces process-wide
// maps: the HTTP handler owns one Store and passes it where it is needed.
package session

import (
	"container/list"
	"sync"
	"time"
)

const (
	// HeaderName carries the session id on API calls.
	HeaderName = "X-Session-ID"
	// CookieName carries the session id on browser navigations.
	CookieName = "wl_session"
)

// Context is what the client remembers about a session.
type Context struct {
	UserID     string    `json:"user_id"`
	LastTripID string    `json:"last_trip_id,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type entry struct {
	key       string
	value     Context
	expiresAt time.Time
}

// Store is a thread-safe LRU of session contexts with TTL support.
type Store struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration

	// front is the most recently used entry
	order *list.List
	items map[string]*list.Element

	now func() time.Time
}

// NewStore creates a store holding at most capacity sessions, each expiring
// ttl after its last write. Non-positive arguments fall back to 1024 entries
// and 24h.
func NewStore(capacity int, ttl time.Duration) *Store {
	if capacity <= 0 {
		capacity = 1024
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Store{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
		now:      time.Now,
	}
}

// Get returns the context for id and marks it as recently used.
// Expired entries are removed and reported as missing.
func (s *Store) Get(id string) (Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[id]
	if !ok {
		return Context{}, false
	}

	e := el.Value.(*entry)
	if s.now().After(e.expiresAt) {
		s.removeElement(el)
		return Context{}, false
	}

	s.order.MoveToFront(el)
	return e.value, true
}

// Put stores ctx under id, evicting the least recently used session when the
// store is full. UpdatedAt is set to the current time.
func (s *Store) Put(id string, ctx Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ctx.UpdatedAt = now

	if el, ok := s.items[id]; ok {
		e := el.Value.(*entry)
		e.value = ctx
		e.expiresAt = now.Add(s.ttl)
		s.order.MoveToFront(el)
		return
	}

	s.items[id] = s.order.PushFront(&entry{key: id, value: ctx, expiresAt: now.Add(s.ttl)})

	for len(s.items) > s.capacity {
		s.removeElement(s.order.Back())
	}
}

// Update applies fn to the current context of id (zero value if absent or
// expired) and stores the result.
func (s *Store) Update(id string, fn func(Context) Context) Context {
	current, _ := s.Get(id)
	next := fn(current)
	s.Put(id, next)

	next, _ = s.Get(id)
	return next
}

// Remove deletes id. It reports whether the session was present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[id]
	if !ok {
		return false
	}
	s.removeElement(el)
	return true
}

// Clear drops every session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order.Init()
	clear(s.items)
}

// Len returns the number of stored sessions, expired ones included until
// they are touched.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

func (s *Store) removeElement(el *list.Element) {
	e := s.order.Remove(el).(*entry)
	delete(s.items, e.key)
}
