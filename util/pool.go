package util

import (
	"sync"

	"telnetlog/internal/nvt"
)

// LineBufSize is the capacity of one field buffer (username or
// password), tied to the decoder's line bound so a pooled buffer
// always holds a maximal line.
const LineBufSize = nvt.MaxLine

// lineBufPool recycles field buffers across connections, keeping the
// per-session allocation cost at zero on the hot accept path.
var lineBufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, LineBufSize)
		return &buf
	},
}

// GetLineBuf retrieves a field buffer from the pool.  Callers must
// return it with [PutLineBuf] when the session ends.
func GetLineBuf() *[]byte {
	return lineBufPool.Get().(*[]byte)
}

// PutLineBuf returns a buffer to the pool for reuse.
func PutLineBuf(buf *[]byte) {
	if buf == nil {
		return
	}
	lineBufPool.Put(buf)
}
