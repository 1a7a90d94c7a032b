package settings

import (
	"context"
	"sort"
	"sync"
)

var _ settingsRepo = (*repoMock)(nil)

type repoMock struct {
	mutex    sync.Mutex
	settings map[string]*Setting
}

func newRepoMock() *repoMock {
	return &repoMock{
		settings: make(map[string]*Setting),
	}
}

func (r *repoMock) All(_ context.Context) ([]*Setting, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sorted := make([]*Setting, 0, len(r.settings))
	for _, setting := range r.settings {
		settingCopy := *setting
		sorted = append(sorted, &settingCopy)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})
	return sorted, nil
}

func (r *repoMock) Upsert(_ context.Context, setting Setting) error {
	if setting.Key == "" {
		return ErrSettingKeyEmpty
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.settings[setting.Key] = &setting
	return nil
}
