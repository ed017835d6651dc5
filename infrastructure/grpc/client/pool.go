package client

import (
	goerrors "errors"
	"fmt"
	pb "social-lab/infrastructure/grpc/api"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ConnPool keeps one client connection per backend address. Services that
// move to a new address simply get a new entry.
type ConnPool struct {
	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
	opts  []grpc.DialOption
}

func NewConnPool(opts ...grpc.DialOption) *ConnPool {
	return &ConnPool{
		conns: make(map[string]*grpc.ClientConn),
		opts:  append(DialOptions(), opts...),
	}
}

// DialOptions are the options every connection between services uses.
func DialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		pb.WithJSONCodec(),
	}
}

func (p *ConnPool) Get(address string) (*grpc.ClientConn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if conn, ok := p.conns[address]; ok {
		return conn, nil
	}
	conn, err := grpc.NewClient(address, p.opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	p.conns[address] = conn
	return conn, nil
}

func (p *ConnPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for address, conn := range p.conns {
		if err := conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", address, err))
		}
		delete(p.conns, address)
	}
	return goerrors.Join(errs...)
}
