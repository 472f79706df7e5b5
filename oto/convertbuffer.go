package oto

import (
	"encoding/binary"
	"math"
)

// floatBufferToBytes writes buff as little endian 32-bit floats into dst,
// which must hold at least 4*len(buff) bytes.
func floatBufferToBytes(dst []byte, buff []float32) {
	for i, v := range buff {
		binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(v))
	}
}
