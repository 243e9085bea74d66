package core

// MaxExamples is the largest number of examples a dataset may hold.
// Index sets are Roaring bitmaps keyed by uint32, so example indices are
// strictly 32-bit.
const MaxExamples int64 = 1<<32 - 1
