package internal

import (
	"bytes"
	"sync"
)

// BufferPool holds buffers reused for encoding wire packets.
var BufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 64))
	},
}
