package adaq8092

import "sync"

// frames are two bytes: header, data.
var frames = &sync.Pool{New: func() interface{} { return make([]byte, 2) }}

func getFrame() []byte {
	return frames.Get().([]byte)
}

func putFrame(b []byte) {
	b[0], b[1] = 0, 0
	frames.Put(b)
}
