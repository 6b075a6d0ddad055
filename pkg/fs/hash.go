package fs

import (
	"encoding/hex"
	"hash/crc32"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// ChecksumBytes returns the CRC32 checksum of data as string.
func ChecksumBytes(data []byte) string {
	hash := crc32.New(castagnoli)
	_, _ = hash.Write(data)

	return hex.EncodeToString(hash.Sum(nil))
}
