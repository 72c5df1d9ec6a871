package multiaddr

// Protocol 描述一个 multiaddr 协议
type Protocol struct {
	// Name 协议名称（如 "ip4", "tcp"）
	Name string

	// Code 协议代码
	Code int

	// VCode 预计算的 varint 编码
	VCode []byte

	// Size 协议数据大小（位）
	// 0 表示无数据
	// -1 表示变长（length-prefixed）
	Size int

	// Path 是否为路径协议（终端协议）
	Path bool

	// Transcoder 编解码器
	Transcoder Transcoder
}

// String 返回协议名称
func (p Protocol) String() string {
	return p.Name
}

// LengthPrefixedVarSize 表示变长数据（使用 varint 前缀）
const LengthPrefixedVarSize = -1

// 协议代码常量（与 multiformats/multicodec 对齐）
// 参考：https://github.com/multiformats/multicodec/blob/master/table.csv
const (
	P_IP4         = 0x0004
	P_TCP         = 0x0006
	P_UDP         = 0x0111
	P_IP6         = 0x0029
	P_IP6ZONE     = 0x002A
	P_DNS         = 0x0035
	P_DNS4        = 0x0036
	P_DNS6        = 0x0037
	P_DNSADDR     = 0x0038
	P_UNIX        = 0x0190
	P_P2P         = 0x01A5
	P_HTTP        = 0x01E0
	P_HTTPS       = 0x01BB
	P_TLS         = 0x01C0
	P_QUIC_V1     = 0x01CD
	P_WS          = 0x01DD
	P_WSS         = 0x01DE
	P_P2P_CIRCUIT = 0x0122
)

func newProtocol(name string, code, size int, t Transcoder) Protocol {
	return Protocol{
		Name:       name,
		Code:       code,
		VCode:      codeToVarint(code),
		Size:       size,
		Transcoder: t,
	}
}

var (
	protoIP4        = newProtocol("ip4", P_IP4, 32, TranscoderIP4)
	protoTCP        = newProtocol("tcp", P_TCP, 16, TranscoderPort)
	protoUDP        = newProtocol("udp", P_UDP, 16, TranscoderPort)
	protoIP6        = newProtocol("ip6", P_IP6, 128, TranscoderIP6)
	protoIP6ZONE    = newProtocol("ip6zone", P_IP6ZONE, LengthPrefixedVarSize, TranscoderIP6Zone)
	protoDNS        = newProtocol("dns", P_DNS, LengthPrefixedVarSize, TranscoderDNS)
	protoDNS4       = newProtocol("dns4", P_DNS4, LengthPrefixedVarSize, TranscoderDNS)
	protoDNS6       = newProtocol("dns6", P_DNS6, LengthPrefixedVarSize, TranscoderDNS)
	protoDNSADDR    = newProtocol("dnsaddr", P_DNSADDR, LengthPrefixedVarSize, TranscoderDNS)
	protoP2P        = newProtocol("p2p", P_P2P, LengthPrefixedVarSize, TranscoderP2P)
	protoHTTP       = newProtocol("http", P_HTTP, 0, nil)
	protoHTTPS      = newProtocol("https", P_HTTPS, 0, nil)
	protoTLS        = newProtocol("tls", P_TLS, 0, nil)
	protoQUICV1     = newProtocol("quic-v1", P_QUIC_V1, 0, nil)
	protoWS         = newProtocol("ws", P_WS, 0, nil)
	protoWSS        = newProtocol("wss", P_WSS, 0, nil)
	protoP2PCircuit = newProtocol("p2p-circuit", P_P2P_CIRCUIT, 0, nil)

	protoUNIX = func() Protocol {
		p := newProtocol("unix", P_UNIX, LengthPrefixedVarSize, TranscoderUnix)
		p.Path = true
		return p
	}()
)

// protocols 协议注册表（按代码索引）
var protocols = map[int]Protocol{}

// protocolsByName 协议注册表（按名称索引）
var protocolsByName = map[string]Protocol{}

func init() {
	for _, p := range []Protocol{
		protoIP4, protoTCP, protoUDP, protoIP6, protoIP6ZONE,
		protoDNS, protoDNS4, protoDNS6, protoDNSADDR,
		protoUNIX, protoP2P, protoHTTP, protoHTTPS, protoTLS,
		protoQUICV1, protoWS, protoWSS, protoP2PCircuit,
	} {
		protocols[p.Code] = p
		protocolsByName[p.Name] = p
	}
	// 向后兼容别名
	protocolsByName["ipfs"] = protoP2P
}

// ProtocolWithCode 根据协议代码获取协议
// 如果协议不存在，返回零值协议（Code = 0）
func ProtocolWithCode(code int) Protocol {
	return protocols[code]
}

// ProtocolWithName 根据协议名称获取协议
// 如果协议不存在，返回零值协议（Code = 0）
func ProtocolWithName(name string) Protocol {
	return protocolsByName[name]
}
