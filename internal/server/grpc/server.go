package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/profilekeeper/internal/logging"
	pb "github.com/dmitrijs2005/profilekeeper/internal/proto"
	"github.com/dmitrijs2005/profilekeeper/internal/server/metrics"
	"google.golang.org/grpc"
)

// ProfileService is the business logic behind the RPCs.
type ProfileService interface {
	Register(ctx context.Context, email, password string, fields map[string]string) error
	Login(ctx context.Context, email, password string) (string, map[string]string, error)
	Lookup(ctx context.Context, caller, email string) (map[string]string, error)
	Update(ctx context.Context, caller, email string, fields map[string]string) error
	Ping(ctx context.Context) error
}

type GRPCServer struct {
	pb.UnimplementedProfileServiceServer
	address   string
	profiles  ProfileService
	metrics   *metrics.Metrics
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, ps ProfileService, m *metrics.Metrics, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		profiles:  ps,
		metrics:   m,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.metricsInterceptor, s.accessTokenInterceptor))
	pb.RegisterProfileServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

// serve blocks until ctx is cancelled and in-flight calls have finished.
func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
