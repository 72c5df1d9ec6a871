package dns

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"
	mdns "github.com/miekg/dns"
)

// ============================================================================
//                              Resolver 接口
// ============================================================================

//go:generate mockgen -source=resolver.go -destination=../../../../tests/mocks/resolver.go -package=mocks Resolver

// Resolver 域名解析器
//
// network 取值 "ip4"（A）、"ip6"（AAAA）或 "ip"（先 A 后 AAAA）。
type Resolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
}

// fallbackServers 读取系统配置失败时使用
var fallbackServers = []string{"127.0.0.1:53", "[::1]:53"}

// ============================================================================
//                              DNSResolver 实现
// ============================================================================

// DNSResolver 基于 miekg/dns 的解析器
type DNSResolver struct {
	servers []string
	udp     *mdns.Client
	tcp     *mdns.Client

	// cache 为 nil 表示禁用缓存
	cache *expirable.LRU[string, []net.IP]
}

// 确保实现接口
var _ Resolver = (*DNSResolver)(nil)

// NewResolver 创建解析器
//
// 未配置服务器时读取 ResolvConf；读取失败退回本机 53 端口。
func NewResolver(cfg Config) *DNSResolver {
	servers := cfg.Servers
	if len(servers) == 0 {
		servers = systemServers(cfg.ResolvConf)
	}

	r := &DNSResolver{
		servers: servers,
		udp:     &mdns.Client{Net: "udp", Timeout: cfg.Timeout},
		tcp:     &mdns.Client{Net: "tcp", Timeout: cfg.Timeout},
	}
	if cfg.CacheTTL > 0 && cfg.CacheSize > 0 {
		r.cache = expirable.NewLRU[string, []net.IP](cfg.CacheSize, nil, cfg.CacheTTL)
	}

	logger.Debug("创建 DNS 解析器", "servers", servers, "cache", r.cache != nil)
	return r
}

func systemServers(path string) []string {
	if path == "" {
		path = DefaultResolvConf
	}
	cc, err := mdns.ClientConfigFromFile(path)
	if err != nil || len(cc.Servers) == 0 {
		logger.Debug("读取系统 DNS 配置失败，使用本机解析", "path", path, "err", err)
		return fallbackServers
	}

	servers := make([]string, 0, len(cc.Servers))
	for _, s := range cc.Servers {
		servers = append(servers, net.JoinHostPort(s, cc.Port))
	}
	return servers
}

// Servers 返回使用的 DNS 服务器
func (r *DNSResolver) Servers() []string {
	return r.servers
}

// LookupIP 解析域名
func (r *DNSResolver) LookupIP(ctx context.Context, network, host string) ([]net.IP, error) {
	qtypes, err := queryTypes(network)
	if err != nil {
		return nil, err
	}

	if ips, ok := localAnswer(network, host); ok {
		if len(ips) == 0 {
			return nil, fmt.Errorf("%w: %s (%s)", ErrNoRecords, host, network)
		}
		return ips, nil
	}

	key := network + "/" + strings.ToLower(mdns.Fqdn(host))
	if r.cache != nil {
		if ips, ok := r.cache.Get(key); ok {
			return ips, nil
		}
	}

	var ips []net.IP
	for _, qtype := range qtypes {
		answers, err := r.query(ctx, host, qtype)
		if err != nil {
			return nil, err
		}
		ips = append(ips, answers...)
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNoRecords, host, network)
	}

	if r.cache != nil {
		r.cache.Add(key, ips)
	}
	return ips, nil
}

// query 依次向每个服务器查询，直到得到确定的应答
func (r *DNSResolver) query(ctx context.Context, host string, qtype uint16) ([]net.IP, error) {
	m := new(mdns.Msg)
	m.SetQuestion(mdns.Fqdn(host), qtype)
	m.RecursionDesired = true

	var lastErr error
	for _, server := range r.servers {
		resp, _, err := r.udp.ExchangeContext(ctx, m, server)
		if err == nil && resp.Truncated {
			resp, _, err = r.tcp.ExchangeContext(ctx, m, server)
		}
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		switch resp.Rcode {
		case mdns.RcodeSuccess:
			return answerIPs(resp), nil
		case mdns.RcodeNameError:
			return nil, nil
		default:
			lastErr = fmt.Errorf("server %s: %s", server, mdns.RcodeToString[resp.Rcode])
		}
	}
	return nil, fmt.Errorf("%w: %s %s: %v", ErrQueryFailed, mdns.TypeToString[qtype], host, lastErr)
}

func answerIPs(resp *mdns.Msg) []net.IP {
	var ips []net.IP
	for _, rr := range resp.Answer {
		switch rec := rr.(type) {
		case *mdns.A:
			ips = append(ips, rec.A)
		case *mdns.AAAA:
			ips = append(ips, rec.AAAA)
		}
	}
	return ips
}

func queryTypes(network string) ([]uint16, error) {
	switch network {
	case "ip4":
		return []uint16{mdns.TypeA}, nil
	case "ip6":
		return []uint16{mdns.TypeAAAA}, nil
	case "ip":
		return []uint16{mdns.TypeA, mdns.TypeAAAA}, nil
	default:
		return nil, fmt.Errorf("dns: unknown network %q", network)
	}
}

// localAnswer 本地应答 localhost 与 IP 字面量
func localAnswer(network, host string) ([]net.IP, bool) {
	name := strings.TrimSuffix(strings.ToLower(host), ".")
	if name == "localhost" || strings.HasSuffix(name, ".localhost") {
		var ips []net.IP
		if network != "ip6" {
			ips = append(ips, net.IPv4(127, 0, 0, 1))
		}
		if network != "ip4" {
			ips = append(ips, net.IPv6loopback)
		}
		return ips, true
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return nil, false
	}
	is4 := ip.To4() != nil
	if (network == "ip4" && !is4) || (network == "ip6" && is4) {
		return nil, true
	}
	return []net.IP{ip}, true
}
