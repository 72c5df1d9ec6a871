package multiaddr

import (
	"fmt"
	"math"

	"github.com/multiformats/go-varint"
)

// codeToVarint 将协议代码转换为 varint 编码的字节
func codeToVarint(code int) []byte {
	if code < 0 || code > math.MaxInt32 {
		panic("invalid protocol code")
	}
	return varint.ToUvarint(uint64(code))
}

// readVarintCode 从字节流中读取 varint 编码的协议代码
// 返回：(code, bytes_read, error)
func readVarintCode(buf []byte) (int, int, error) {
	code, n, err := varint.FromUvarint(buf)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidProtocol, err)
	}
	// 只允许 32 位代码
	if code > math.MaxInt32 {
		return 0, 0, fmt.Errorf("%w: code %d overflows int32", ErrInvalidProtocol, code)
	}
	return int(code), n, nil
}

// readLength 读取变长协议值的长度前缀
func readLength(buf []byte) (int, int, error) {
	length, n, err := varint.FromUvarint(buf)
	if err != nil {
		return 0, 0, err
	}
	if length > math.MaxInt32 {
		return 0, 0, fmt.Errorf("value length %d too large", length)
	}
	return int(length), n, nil
}
