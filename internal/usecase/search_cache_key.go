package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const snapshotKeyPrefix = "jobs:snapshot:"

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// JobsSnapshotKey maps keywords to a cache key. Keywords differing only in
// case or spacing share an entry.
func JobsSnapshotKey(keywords string) string {
	sum := sha256.Sum256([]byte(normalizeSearchValue(keywords)))
	return snapshotKeyPrefix + hex.EncodeToString(sum[:])
}

func JobsSnapshotPattern() string {
	return snapshotKeyPrefix + "*"
}
