package utils

import (
	"hash/fnv"
	"strconv"
)

// Fingerprint is a short fnv-64a digest, used as a weak content validator.
func Fingerprint(b []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return strconv.FormatUint(h.Sum64(), 16)
}
