package multiaddr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/multiformats/go-varint"
)

// stringToBytes 将多地址字符串转换为二进制格式
func stringToBytes(s string) ([]byte, error) {
	// 去除尾部斜杠
	s = strings.TrimRight(s, "/")

	if len(s) == 0 {
		return nil, ErrEmptyMultiaddr
	}

	if !strings.HasPrefix(s, "/") {
		return nil, fmt.Errorf("%w: must begin with /", ErrInvalidMultiaddr)
	}

	var buf bytes.Buffer
	// 跳过第一个空元素
	parts := strings.Split(s, "/")[1:]

	for len(parts) > 0 {
		name := parts[0]
		proto := ProtocolWithName(name)
		if proto.Code == 0 {
			return nil, fmt.Errorf("%w: unknown protocol %s", ErrInvalidMultiaddr, name)
		}

		buf.Write(proto.VCode)
		parts = parts[1:]

		if proto.Size == 0 {
			continue
		}

		if len(parts) < 1 {
			return nil, fmt.Errorf("%w: protocol %s requires a value", ErrInvalidMultiaddr, name)
		}

		// 路径协议消费剩余所有部分
		if proto.Path {
			parts = []string{"/" + strings.Join(parts, "/")}
		}

		valueBytes, err := proto.Transcoder.StringToBytes(parts[0])
		if err != nil {
			return nil, fmt.Errorf("%w: value for protocol %s: %v", ErrInvalidMultiaddr, name, err)
		}
		if proto.Size == LengthPrefixedVarSize {
			buf.Write(varint.ToUvarint(uint64(len(valueBytes))))
		} else if len(valueBytes) != proto.Size/8 {
			return nil, fmt.Errorf("%w: value for protocol %s has %d bytes", ErrInvalidMultiaddr, name, len(valueBytes))
		}

		buf.Write(valueBytes)
		parts = parts[1:]
	}

	return buf.Bytes(), nil
}

// readComponent 从字节流头部读取一个组件
// 返回：(component, bytes_read, error)
func readComponent(b []byte) (Component, int, error) {
	code, n, err := readVarintCode(b)
	if err != nil {
		return Component{}, 0, err
	}

	proto := ProtocolWithCode(code)
	if proto.Code == 0 {
		return Component{}, 0, fmt.Errorf("%w: unknown protocol code %d", ErrInvalidMultiaddr, code)
	}

	offset := n
	if proto.Size == 0 {
		return Component{protocol: proto, raw: b[:offset:offset]}, offset, nil
	}

	var size int
	if proto.Size == LengthPrefixedVarSize {
		length, m, err := readLength(b[offset:])
		if err != nil {
			return Component{}, 0, fmt.Errorf("%w: length for protocol %s: %v", ErrInvalidMultiaddr, proto.Name, err)
		}
		offset += m
		size = length
	} else {
		size = proto.Size / 8
	}

	if len(b) < offset+size {
		return Component{}, 0, fmt.Errorf("%w: insufficient data for protocol %s: need %d, have %d",
			ErrInvalidMultiaddr, proto.Name, size, len(b)-offset)
	}

	valueBytes := b[offset : offset+size]
	if err := proto.Transcoder.ValidateBytes(valueBytes); err != nil {
		return Component{}, 0, fmt.Errorf("%w: data for protocol %s: %v", ErrInvalidMultiaddr, proto.Name, err)
	}
	value, err := proto.Transcoder.BytesToString(valueBytes)
	if err != nil {
		return Component{}, 0, fmt.Errorf("%w: data for protocol %s: %v", ErrInvalidMultiaddr, proto.Name, err)
	}

	end := offset + size
	return Component{protocol: proto, value: value, raw: b[:end:end]}, end, nil
}

// readComponents 解析全部组件
func readComponents(b []byte) ([]Component, error) {
	if len(b) == 0 {
		return nil, ErrEmptyMultiaddr
	}

	var comps []Component
	for len(b) > 0 {
		c, n, err := readComponent(b)
		if err != nil {
			return nil, err
		}
		comps = append(comps, c)
		b = b[n:]
	}
	return comps, nil
}

// bytesToString 将二进制格式的多地址转换为字符串
func bytesToString(b []byte) (string, error) {
	comps, err := readComponents(b)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, c := range comps {
		sb.WriteString(c.String())
	}
	return sb.String(), nil
}

// validateBytes 验证二进制多地址的格式
func validateBytes(b []byte) error {
	_, err := readComponents(b)
	return err
}
