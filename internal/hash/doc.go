// Package hash provides the CRC32-Castagnoli checksums used for report
// integrity and S3 upload validation.
//
//	sum := hash.CRC32C(data)
//	header := hash.CRC32CBase64(data) // x-amz-checksum-crc32c
package hash
