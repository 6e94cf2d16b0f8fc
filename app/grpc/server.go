package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/vibast-solutions/ms-go-qrplatba/app/mapper"
	"github.com/vibast-solutions/ms-go-qrplatba/app/service"
	"github.com/vibast-solutions/ms-go-qrplatba/app/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type Server struct {
	types.UnimplementedDescriptorsServiceServer
	descriptorService *service.DescriptorService
}

func NewServer(descriptorService *service.DescriptorService) *Server {
	return &Server{descriptorService: descriptorService}
}

func (s *Server) Health(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return types.ToStruct(&types.HealthResponse{Status: "ok"})
}

func (s *Server) AccountToIban(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	account := &types.AccountToIbanRequest{Account: strings.TrimSpace(req.GetValue())}
	if err := account.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	iban, err := s.descriptorService.AccountToIban(account.Account)
	if err != nil {
		loggerWithContext(ctx).WithError(err).Debug("Account conversion failed")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	return wrapperspb.String(iban), nil
}

func (s *Server) PreviewDescriptor(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeEncodeRequest(in)
	if err != nil {
		return nil, err
	}

	descriptor, err := s.descriptorService.PreviewDescriptor(req)
	if err != nil {
		if service.IsInputError(err) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return toStructOrInternal(mapper.PreviewToResponse(descriptor))
}

func (s *Server) CreateDescriptor(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	l := loggerWithContext(ctx)
	req, err := decodeEncodeRequest(in)
	if err != nil {
		l.WithError(err).Debug("Create descriptor validation failed")
		return nil, err
	}
	if req.RequestID == "" {
		req.RequestID = RequestIDFromContext(ctx)
	}

	item, err := s.descriptorService.CreateDescriptor(ctx, req)
	if err != nil {
		switch {
		case service.IsInputError(err):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, service.ErrDescriptorAlreadyExists):
			return nil, status.Error(codes.AlreadyExists, err.Error())
		default:
			l.WithError(err).Error("Create descriptor failed")
			return nil, status.Error(codes.Internal, "internal server error")
		}
	}

	return toStructOrInternal(&types.DescriptorEnvelopeResponse{Descriptor: mapper.DescriptorToResponse(item)})
}

func (s *Server) GetDescriptor(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	req := &types.GetDescriptorRequest{Reference: strings.TrimSpace(in.GetValue())}
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.descriptorService.GetDescriptor(ctx, req.Reference)
	if err != nil {
		if errors.Is(err, service.ErrDescriptorNotFound) {
			return nil, status.Error(codes.NotFound, "descriptor not found")
		}
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return toStructOrInternal(&types.DescriptorEnvelopeResponse{Descriptor: mapper.DescriptorToResponse(item)})
}

func (s *Server) ListDescriptors(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req types.ListDescriptorsRequest
	if err := types.FromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request body")
	}
	req.CallerService = strings.TrimSpace(req.CallerService)
	req.IBAN = strings.ToUpper(strings.TrimSpace(req.IBAN))
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	items, err := s.descriptorService.ListDescriptors(ctx, &req)
	if err != nil {
		loggerWithContext(ctx).WithError(err).Error("List descriptors failed")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return toStructOrInternal(&types.ListDescriptorsResponse{Descriptors: mapper.DescriptorsToResponse(items)})
}

func decodeEncodeRequest(in *structpb.Struct) (*types.EncodeDescriptorRequest, error) {
	var req types.EncodeDescriptorRequest
	if err := types.FromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &req, nil
}

func toStructOrInternal(v interface{}) (*structpb.Struct, error) {
	out, err := types.ToStruct(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return out, nil
}
