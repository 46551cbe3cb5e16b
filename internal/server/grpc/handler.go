package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
	pb "github.com/dmitrijs2005/profilekeeper/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// toStatus maps service errors onto gRPC codes. Anything unrecognised is
// logged and hidden behind codes.Internal.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	}
	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	rec, err := pb.Strings(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	email, password := rec[pb.KeyEmail], rec[pb.KeyPassword]
	delete(rec, pb.KeyEmail)
	delete(rec, pb.KeyPassword)

	s.logger.Info(ctx, "Registration request", "email", email)

	if err := s.profiles.Register(ctx, email, password, rec); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	email := pb.StringField(req, pb.KeyEmail)

	token, profile, err := s.profiles.Login(ctx, email, pb.StringField(req, pb.KeyPassword))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Info(ctx, "login rejected", "email", email)
		}
		return nil, s.toStatus(ctx, err)
	}

	return pb.NewLoginResponse(token, profile), nil
}

func (s *GRPCServer) Lookup(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	profile, err := s.profiles.Lookup(ctx, subjectFrom(ctx), req.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return pb.NewStrings(profile), nil
}

func (s *GRPCServer) Update(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	patch := pb.StructField(req, pb.KeyFields)
	if patch == nil {
		return nil, status.Error(codes.InvalidArgument, "fields are required")
	}
	fields, err := pb.Strings(patch)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := s.profiles.Update(ctx, subjectFrom(ctx), pb.StringField(req, pb.KeyEmail), fields); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	if err := s.profiles.Ping(ctx); err != nil {
		s.logger.Warn(ctx, "ping: database unreachable", "error", err)
		return nil, status.Error(codes.Unavailable, "database unavailable")
	}
	return wrapperspb.String(pb.PingOK), nil
}
