package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
	pb "github.com/dmitrijs2005/profilekeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const callTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.ProfileServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// SetAccessToken replaces the token sent with every call. An empty token
// makes calls anonymous.
func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAccessToken(ctx, s.token()), method, req, reply, cc, opts...)
}

func NewProfileKeeperClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewProfileServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, email, password string, fields map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	rec := make(map[string]string, len(fields)+2)
	for k, v := range fields {
		rec[k] = v
	}
	rec[pb.KeyEmail] = email
	rec[pb.KeyPassword] = password

	if _, err := s.client.Register(ctx, pb.NewStrings(rec)); err != nil {
		return s.mapError(err)
	}
	return nil
}

// Login authenticates and keeps the returned access token for later calls.
// It returns the token and the profile the server holds for email.
func (s *GRPCClient) Login(ctx context.Context, email, password string) (string, map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	req := pb.NewStrings(map[string]string{pb.KeyEmail: email, pb.KeyPassword: password})
	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return "", nil, s.mapError(err)
	}

	token := pb.StringField(resp, pb.KeyAccessToken)
	if token == "" {
		return "", nil, fmt.Errorf("%w: login response without access token", ErrInvalidRecord)
	}

	profile, err := recordFrom(pb.StructField(resp, pb.KeyProfile))
	if err != nil {
		return "", nil, err
	}

	s.SetAccessToken(token)
	return token, profile, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetValue() != pb.PingOK {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Lookup(ctx context.Context, email string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.Lookup(ctx, wrapperspb.String(email))
	if err != nil {
		return nil, s.mapError(err)
	}
	return recordFrom(resp)
}

func (s *GRPCClient) Update(ctx context.Context, email string, fields map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	if _, err := s.client.Update(ctx, pb.NewUpdateRequest(email, fields)); err != nil {
		return s.mapError(err)
	}
	return nil
}

func recordFrom(st *structpb.Struct) (map[string]string, error) {
	rec, err := pb.Strings(st)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return rec, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
