package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// GenerateCacheKey builds a deterministic key from the question, the
// transcript id set, and k. Transcript ids are sorted so the same query
// over the same transcripts always hits the same entry.
func GenerateCacheKey(question string, transcriptIDs []string, k int) string {
	ids := make([]string, len(transcriptIDs))
	copy(ids, transcriptIDs)
	sort.Strings(ids)

	payload := fmt.Sprintf("%s|%s|%d", strings.TrimSpace(strings.ToLower(question)), strings.Join(ids, ","), k)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
