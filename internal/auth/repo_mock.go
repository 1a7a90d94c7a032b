package auth

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ adminsRepo = (*repoMock)(nil)

type repoMock struct {
	mutex  sync.Mutex
	admins map[string]*Admin
}

func newRepoMock() *repoMock {
	return &repoMock{
		admins: make(map[string]*Admin),
	}
}

func (r *repoMock) Count(_ context.Context) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return int64(len(r.admins)), nil
}

func (r *repoMock) Add(_ context.Context, admin Admin) (string, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	admin.ID = primitive.NewObjectID().Hex()
	r.admins[admin.ID] = &admin
	return admin.ID, nil
}

func (r *repoMock) GetByUsername(_ context.Context, username string) (*Admin, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, admin := range r.admins {
		if admin.Username == username {
			adminCopy := *admin
			return &adminCopy, nil
		}
	}
	return nil, ErrAdminNotFound
}

func (r *repoMock) GetByID(_ context.Context, id string) (*Admin, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	admin, ok := r.admins[id]
	if !ok {
		return nil, ErrAdminNotFound
	}
	adminCopy := *admin
	return &adminCopy, nil
}

func (r *repoMock) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	admin, ok := r.admins[id]
	if !ok {
		return ErrAdminNotFound
	}
	admin.PasswordHash = passwordHash
	return nil
}
