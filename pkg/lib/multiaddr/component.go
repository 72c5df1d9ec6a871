package multiaddr

import (
	"bytes"
	"fmt"

	"github.com/multiformats/go-varint"
)

// Component 表示多地址中的单个协议段
type Component struct {
	protocol Protocol
	value    string
	raw      []byte
}

// NewComponent 根据协议名称和值创建组件
func NewComponent(name, value string) (Component, error) {
	proto := ProtocolWithName(name)
	if proto.Code == 0 {
		return Component{}, fmt.Errorf("%w: unknown protocol %s", ErrInvalidProtocol, name)
	}

	raw := append([]byte(nil), proto.VCode...)
	if proto.Size == 0 {
		if value != "" {
			return Component{}, fmt.Errorf("%w: protocol %s takes no value", ErrInvalidProtocol, name)
		}
		return Component{protocol: proto, raw: raw}, nil
	}

	valueBytes, err := proto.Transcoder.StringToBytes(value)
	if err != nil {
		return Component{}, fmt.Errorf("%w: value for protocol %s: %v", ErrInvalidProtocol, name, err)
	}
	if proto.Size == LengthPrefixedVarSize {
		raw = append(raw, varint.ToUvarint(uint64(len(valueBytes)))...)
	}
	raw = append(raw, valueBytes...)

	// 规范化值（例如 IPv6 缩写）
	canonical, err := proto.Transcoder.BytesToString(valueBytes)
	if err != nil {
		return Component{}, err
	}
	return Component{protocol: proto, value: canonical, raw: raw}, nil
}

// Protocol 返回组件的协议
func (c Component) Protocol() Protocol {
	return c.protocol
}

// Code 返回组件的协议代码
func (c Component) Code() int {
	return c.protocol.Code
}

// Value 返回组件的值
func (c Component) Value() string {
	return c.value
}

// Bytes 返回组件的二进制编码
func (c Component) Bytes() []byte {
	return c.raw
}

// Equal 判断两个组件是否相同
func (c Component) Equal(other Component) bool {
	return bytes.Equal(c.raw, other.raw)
}

// String 返回组件的字符串形式，如 "/tcp/4001"
func (c Component) String() string {
	if c.protocol.Size == 0 {
		return "/" + c.protocol.Name
	}
	if c.protocol.Path {
		// 路径值自带前导斜杠
		return "/" + c.protocol.Name + c.value
	}
	return "/" + c.protocol.Name + "/" + c.value
}

// Multiaddr 将单个组件转换为多地址
func (c Component) Multiaddr() Multiaddr {
	return Join(c)
}

// Components 返回多地址的全部组件
func Components(m Multiaddr) []Component {
	if m == nil {
		return nil
	}
	comps, err := readComponents(m.Bytes())
	if err != nil {
		return nil
	}
	return comps
}

// Join 由组件序列构建多地址
//
// 空序列返回 nil。
func Join(comps ...Component) Multiaddr {
	if len(comps) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for _, c := range comps {
		buf.Write(c.raw)
	}
	return &multiaddr{bytes: buf.Bytes()}
}

// SplitFirst 分离多地址的第一个组件和剩余部分
//
// 剩余部分为空时返回 nil。
func SplitFirst(m Multiaddr) (Component, Multiaddr) {
	comps := Components(m)
	if len(comps) == 0 {
		return Component{}, nil
	}
	return comps[0], Join(comps[1:]...)
}

// SplitLast 分离多地址的最后一个组件和前面部分
//
// 前面部分为空时返回 nil。
func SplitLast(m Multiaddr) (Multiaddr, Component) {
	comps := Components(m)
	if len(comps) == 0 {
		return nil, Component{}
	}
	return Join(comps[:len(comps)-1]...), comps[len(comps)-1]
}

// ForEach 遍历多地址中的每个组件
// 如果回调函数返回 false，则停止遍历
func ForEach(m Multiaddr, fn func(Component) bool) {
	for _, c := range Components(m) {
		if !fn(c) {
			return
		}
	}
}
