// Package s3 provides an Amazon S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("reports/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//	arc := archive.New(store)
//
// # Features
//
//   - Range reads through the blobstore.Blob interface
//   - CRC32C checksums on single-part uploads
//   - Multipart uploads via the SDK upload manager for large blobs
//   - Automatic pagination for listing
package s3
