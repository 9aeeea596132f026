package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DatasetKey generates a cache key for a source file. The key covers the
// path and the file's mtime and size, so an unchanged file is never re-read
// or re-cleaned within one process lifetime, while an edited file misses.
func DatasetKey(path string) string {
	stamp := ""
	if info, err := os.Stat(path); err == nil {
		stamp = fmt.Sprintf("%d:%d", info.ModTime().UnixNano(), info.Size())
	}
	hash := sha256.Sum256([]byte(path + "|" + stamp))
	return "casewatch:v1:" + hex.EncodeToString(hash[:])
}
