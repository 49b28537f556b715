package binding

// BufferWrite describes a single GPU buffer write operation targeting a
// Provider's uniform buffer at a given byte offset. Batches of BufferWrite are
// submitted through the Renderer so per-frame uploads coalesce into one queue
// submission.
type BufferWrite struct {
	Provider Provider
	Offset   uint64
	Data     []byte
}
