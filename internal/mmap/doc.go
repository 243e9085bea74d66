// Package mmap maps local files read-only into memory.
//
// The local blob store uses it so archived reports are decoded straight from
// the page cache:
//
//	m, err := mmap.Open(path)
//	if err != nil { ... }
//	defer m.Close()
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix uses mmap(2) and madvise(2); Windows uses CreateFileMapping and
// MapViewOfFile, with Advise as a no-op.
package mmap
