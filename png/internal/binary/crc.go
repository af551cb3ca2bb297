package binary

import "hash/crc32"

// Checksum computes the chunk CRC-32 (IEEE) over tag followed by payload.
func Checksum(tag, payload []byte) uint32 {
	crc := crc32.ChecksumIEEE(tag)
	return crc32.Update(crc, crc32.IEEETable, payload)
}
