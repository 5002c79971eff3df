package utils

import (
	"os"
	"sync"
	"time"
)

// fileStamp identifies one version of a file on disk
type fileStamp struct {
	modTime time.Time
	size    int64
}

func stampOf(path string) (fileStamp, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, err
	}
	return fileStamp{modTime: stat.ModTime(), size: stat.Size()}, nil
}

type fileCacheItem[V any] struct {
	value V
	stamp fileStamp
}

// FileCache memoizes values derived from files. An entry is dropped as soon
// as the file it came from changes size or modification time.
type FileCache[V any] struct {
	items map[string]fileCacheItem[V]
	mutex sync.RWMutex
}

// NewFileCache creates an empty file cache
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{
		items: make(map[string]fileCacheItem[V]),
	}
}

// Get returns the value cached for path if the file is unchanged
func (c *FileCache[V]) Get(path string) (V, bool) {
	c.mutex.RLock()
	item, exists := c.items[path]
	c.mutex.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}

	stamp, err := stampOf(path)
	if err == nil && stamp == item.stamp {
		return item.value, true
	}

	c.Invalidate(path)
	return zero, false
}

// Set caches value for path, recording the current state of the file
func (c *FileCache[V]) Set(path string, value V) error {
	stamp, err := stampOf(path)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[path] = fileCacheItem[V]{value: value, stamp: stamp}
	return nil
}

// GetOrLoad returns the cached value for path, calling load on a miss
func (c *FileCache[V]) GetOrLoad(path string, load func(path string) (V, error)) (V, error) {
	if value, ok := c.Get(path); ok {
		return value, nil
	}

	value, err := load(path)
	if err != nil {
		return value, err
	}

	// a file that vanished after loading is simply not cached
	_ = c.Set(path, value)
	return value, nil
}

// Invalidate removes the entry for path
func (c *FileCache[V]) Invalidate(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, path)
}
