package incremental_test

import (
	"errors"
	"sync"
	"testing"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/incr/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var errNotExist = errors.New("no such file or directory")

// diskFS is an in-memory file system that counts reads per path.
type diskFS struct {
	mu     sync.Mutex
	files  map[string]string
	reads  map[string]int
	exists map[string]int
}

func newDiskFS(files map[string]string) *diskFS {
	return &diskFS{
		files:  files,
		reads:  make(map[string]int),
		exists: make(map[string]int),
	}
}

func (d *diskFS) ReadFile(path string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reads[path]++
	content, ok := d.files[path]
	if !ok {
		return "", errNotExist
	}
	return content, nil
}

func (d *diskFS) Exists(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.exists[path]++
	_, ok := d.files[path]
	return ok
}

func (d *diskFS) write(path, content string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[path] = content
}

func (d *diskFS) remove(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, path)
}

func (d *diskFS) readCount(path string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reads[path]
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return log
}

// lookupTable is a resolver cache whose keys hold getters, defined once.
type lookupTable struct {
	mu      sync.Mutex
	getters map[string]ports.Getter
}

func newLookupTable() *lookupTable {
	return &lookupTable{getters: make(map[string]ports.Getter)}
}

func (l *lookupTable) Get(file string) (domain.Record, bool) {
	l.mu.Lock()
	getter, ok := l.getters[file]
	l.mu.Unlock()
	if !ok {
		return domain.Record{}, false
	}
	return getter()
}

func (l *lookupTable) Has(file string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.getters[file]
	return ok
}

func (l *lookupTable) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.getters)
}

func (l *lookupTable) Define(file string, getter ports.Getter) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.getters[file]; ok {
		return false
	}
	l.getters[file] = getter
	return true
}
