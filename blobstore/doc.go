// Package blobstore provides storage for archived experiment reports.
//
// BlobStore is the interface for reading and writing immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, atomic writes, mmap reads
//   - MemoryStore: in-process map, for tests and dry runs
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3 with managed uploads
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Names use forward slashes ("experiment/run.report") on every backend.
package blobstore
