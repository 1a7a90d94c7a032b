package about

import (
	"context"
	"sync"
)

var _ aboutRepo = (*repoMock)(nil)

type repoMock struct {
	mutex sync.Mutex
	page  *Page
}

func newRepoMock() *repoMock {
	return &repoMock{}
}

func (r *repoMock) Get(_ context.Context) (*Page, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.page == nil {
		defaultPage := DefaultPage()
		return &defaultPage, nil
	}
	pageCopy := *r.page
	return &pageCopy, nil
}

func (r *repoMock) Save(_ context.Context, page Page) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.page = &page
	return nil
}
