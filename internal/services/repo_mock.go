package services

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ servicesRepo = (*repoMock)(nil)

type repoMock struct {
	mutex    sync.Mutex
	services map[string]*Service
}

func newRepoMock() *repoMock {
	return &repoMock{
		services: make(map[string]*Service),
	}
}

func (r *repoMock) AddService(_ context.Context, service *Service) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	service.ID = primitive.NewObjectID()
	serviceCopy := *service
	r.services[service.ID.Hex()] = &serviceCopy
	return nil
}

func (r *repoMock) UpdateService(_ context.Context, id string, service Service) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, ok := r.services[id]
	if !ok {
		return ErrServiceNotFound
	}
	service.ID = existing.ID
	r.services[id] = &service
	return nil
}

func (r *repoMock) DeleteService(_ context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.services[id]; !ok {
		return ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *repoMock) All(_ context.Context) ([]*Service, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sorted := make([]*Service, 0, len(r.services))
	for _, service := range r.services {
		serviceCopy := *service
		sorted = append(sorted, &serviceCopy)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted, nil
}
