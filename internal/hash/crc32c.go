package hash

import (
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
)

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// CRC32CBase64 returns the checksum as base64 of its big-endian bytes,
// the format S3 expects.
func CRC32CBase64(data []byte) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], CRC32C(data))
	return base64.StdEncoding.EncodeToString(b[:])
}

// AppendCRC32C appends the little-endian checksum of data to data.
func AppendCRC32C(data []byte) []byte {
	return binary.LittleEndian.AppendUint32(data, CRC32C(data))
}

// VerifyCRC32C splits a buffer written by AppendCRC32C into its payload and
// reports whether the trailing checksum matches.
func VerifyCRC32C(buf []byte) ([]byte, bool) {
	if len(buf) < 4 {
		return nil, false
	}
	payload := buf[:len(buf)-4]
	return payload, binary.LittleEndian.Uint32(buf[len(buf)-4:]) == CRC32C(payload)
}
