package events

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ eventsRepo = (*repoMock)(nil)

type repoMock struct {
	mutex  sync.Mutex
	events map[string]*Event
}

func newRepoMock() *repoMock {
	return &repoMock{
		events: make(map[string]*Event),
	}
}

func (r *repoMock) AddEvent(_ context.Context, event *Event) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	event.ID = primitive.NewObjectID()
	eventCopy := *event
	r.events[event.ID.Hex()] = &eventCopy
	return nil
}

func (r *repoMock) UpdateEvent(_ context.Context, id string, event Event) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, ok := r.events[id]
	if !ok {
		return ErrEventNotFound
	}
	event.ID = existing.ID
	r.events[id] = &event
	return nil
}

func (r *repoMock) DeleteEvent(_ context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *repoMock) All(_ context.Context) ([]*Event, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sorted := make([]*Event, 0, len(r.events))
	for _, event := range r.events {
		eventCopy := *event
		sorted = append(sorted, &eventCopy)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted, nil
}
