// Package resource bounds the work a process spends on evaluation.
//
// A Controller governs two resources:
//
//   - Workers: a weighted semaphore shared by every fold evaluation, so
//     concurrent tuning candidates cannot oversubscribe the machine.
//   - IO: a token bucket that paces archive uploads and downloads.
//
// Usage:
//
//	rc := resource.NewController(resource.Config{
//	    MaxWorkers:         8,
//	    IOLimitBytesPerSec: 16 << 20,
//	})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
// All methods handle a nil Controller; they become no-ops.
package resource
