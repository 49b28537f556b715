package binding

import (
	"bytes"
	"testing"
)

func TestProvider_WriteStagesWithoutUpload(t *testing.T) {
	p := NewProvider("test", WithSize(16))

	if err := p.Write([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// No upload path installed, Flush must not panic.
	p.Flush()
}

func TestProvider_FlushPushesStagedBytesOnce(t *testing.T) {
	var uploads [][]byte
	var offsets []uint64
	p := NewProvider("test", WithSize(32), WithUploadFunc(func(offset uint64, data []byte) {
		buf := make([]byte, len(data))
		copy(buf, data)
		uploads = append(uploads, buf)
		offsets = append(offsets, offset)
	}))

	payload := []byte{9, 8, 7, 6, 5}
	if err := p.Write(payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	p.Flush()
	p.Flush() // nothing staged, must not upload again

	if len(uploads) != 1 {
		t.Fatalf("upload count = %d, expected 1", len(uploads))
	}
	if offsets[0] != 0 {
		t.Errorf("upload offset = %d, expected 0", offsets[0])
	}
	if !bytes.Equal(uploads[0], payload) {
		t.Errorf("uploaded bytes = %v, expected %v", uploads[0], payload)
	}
}

func TestProvider_WriteAtExtendsWatermark(t *testing.T) {
	var got []byte
	p := NewProvider("test", WithSize(64), WithUploadFunc(func(offset uint64, data []byte) {
		got = make([]byte, len(data))
		copy(got, data)
	}))

	if err := p.WriteAt(8, []byte{1, 1}); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}
	if err := p.WriteAt(0, []byte{2, 2}); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}
	p.Flush()

	// The flush covers bytes 0 through the highest staged offset.
	if len(got) != 10 {
		t.Fatalf("flushed %d bytes, expected 10", len(got))
	}
	if got[0] != 2 || got[8] != 1 {
		t.Errorf("flushed content wrong: got[0]=%d got[8]=%d", got[0], got[8])
	}
}

func TestProvider_WriteBeyondCapacityFails(t *testing.T) {
	p := NewProvider("tiny", WithSize(4))

	if err := p.Write([]byte{1, 2, 3, 4, 5}); err == nil {
		t.Error("oversized Write succeeded, expected error")
	}
	if err := p.WriteAt(2, []byte{1, 2, 3}); err == nil {
		t.Error("out-of-range WriteAt succeeded, expected error")
	}
}

func TestProvider_LastWriteWinsBeforeFlush(t *testing.T) {
	var got []byte
	p := NewProvider("test", WithSize(8), WithUploadFunc(func(offset uint64, data []byte) {
		got = make([]byte, len(data))
		copy(got, data)
	}))

	if err := p.Write([]byte{1, 1, 1, 1}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := p.Write([]byte{2, 2, 2, 2}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	p.Flush()

	if !bytes.Equal(got, []byte{2, 2, 2, 2}) {
		t.Errorf("flushed %v, expected the second write to win", got)
	}
}

func TestProvider_SizeReflectsStagingCapacity(t *testing.T) {
	p := NewProvider("sized", WithSize(544))
	if p.Size() != 544 {
		t.Errorf("Size() = %d, expected 544", p.Size())
	}

	bare := NewProvider("bare")
	if bare.Size() != 0 {
		t.Errorf("Size() = %d for bare provider, expected 0", bare.Size())
	}
}
