package domain

import "fmt"

// Frame is the artifact produced by resolving a feature graph: a dense
// float64 tensor plus the provenance accumulated while it was built.
//
// Data is stored flat in row-major order. Shape is immutable after
// construction; writes go through Set to keep indexing honest.
type Frame struct {
	Data       []float64  `json:"data"`
	Shape      []int      `json:"shape"`
	Provenance Provenance `json:"provenance,omitempty"`
}

// NewFrame allocates a zero-filled frame with the given shape.
func NewFrame(shape ...int) *Frame {
	size := 1
	for _, dim := range shape {
		size *= dim
	}
	return &Frame{
		Data:  make([]float64, size),
		Shape: append([]int(nil), shape...),
	}
}

// NewFrameFrom wraps existing data in a frame. The data length must match
// the shape product.
func NewFrameFrom(data []float64, shape ...int) (*Frame, error) {
	size := 1
	for _, dim := range shape {
		size *= dim
	}
	if len(data) != size {
		return nil, fmt.Errorf("frame data length %d does not match shape %v", len(data), shape)
	}
	return &Frame{Data: data, Shape: append([]int(nil), shape...)}, nil
}

// Size returns the total number of elements.
func (f *Frame) Size() int {
	return len(f.Data)
}

// offset converts a multi-dimensional index into a flat offset.
func (f *Frame) offset(index []int) (int, error) {
	if len(index) != len(f.Shape) {
		return 0, fmt.Errorf("index rank %d does not match frame rank %d", len(index), len(f.Shape))
	}
	off := 0
	for axis, i := range index {
		if i < 0 || i >= f.Shape[axis] {
			return 0, fmt.Errorf("index %d out of range for axis %d (size %d)", i, axis, f.Shape[axis])
		}
		off = off*f.Shape[axis] + i
	}
	return off, nil
}

// At reads the element at the given index.
func (f *Frame) At(index ...int) (float64, error) {
	off, err := f.offset(index)
	if err != nil {
		return 0, err
	}
	return f.Data[off], nil
}

// Set writes the element at the given index.
func (f *Frame) Set(value float64, index ...int) error {
	off, err := f.offset(index)
	if err != nil {
		return err
	}
	f.Data[off] = value
	return nil
}

// Add accumulates the other frame into this one element-wise.
// Shapes must match exactly.
func (f *Frame) Add(other *Frame) error {
	if len(f.Data) != len(other.Data) {
		return fmt.Errorf("cannot add frame of size %d to frame of size %d", other.Size(), f.Size())
	}
	for i, v := range other.Data {
		f.Data[i] += v
	}
	return nil
}

// Clone returns a deep copy of the frame, including its provenance.
func (f *Frame) Clone() *Frame {
	clone := &Frame{
		Data:  append([]float64(nil), f.Data...),
		Shape: append([]int(nil), f.Shape...),
	}
	if f.Provenance != nil {
		clone.Provenance = f.Provenance.Clone()
	}
	return clone
}

// Stamp appends a provenance snapshot to the frame.
func (f *Frame) Stamp(s Snapshot) {
	f.Provenance = append(f.Provenance, s)
}

// CloneFrames deep-copies a working list of frames.
func CloneFrames(frames []*Frame) []*Frame {
	if frames == nil {
		return nil
	}
	out := make([]*Frame, len(frames))
	for i, f := range frames {
		out[i] = f.Clone()
	}
	return out
}
