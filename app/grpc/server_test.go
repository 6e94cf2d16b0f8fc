package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-qrplatba/app/entity"
	"github.com/vibast-solutions/ms-go-qrplatba/app/render"
	"github.com/vibast-solutions/ms-go-qrplatba/app/repository"
	"github.com/vibast-solutions/ms-go-qrplatba/app/service"
	"github.com/vibast-solutions/ms-go-qrplatba/app/types"
	"github.com/vibast-solutions/ms-go-qrplatba/config"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type grpcDescriptorRepo struct {
	createFn                func(ctx context.Context, descriptor *entity.Descriptor) error
	findByReferenceFn       func(ctx context.Context, reference string) (*entity.Descriptor, error)
	findByCallerRequestIDFn func(ctx context.Context, callerService, requestID string) (*entity.Descriptor, error)
	listFn                  func(ctx context.Context, filter repository.DescriptorFilter) ([]*entity.Descriptor, error)
}

func (r *grpcDescriptorRepo) Create(ctx context.Context, descriptor *entity.Descriptor) error {
	if r.createFn != nil {
		return r.createFn(ctx, descriptor)
	}
	return nil
}

func (r *grpcDescriptorRepo) FindByReference(ctx context.Context, reference string) (*entity.Descriptor, error) {
	if r.findByReferenceFn != nil {
		return r.findByReferenceFn(ctx, reference)
	}
	return nil, nil
}

func (r *grpcDescriptorRepo) FindByCallerRequestID(ctx context.Context, callerService, requestID string) (*entity.Descriptor, error) {
	if r.findByCallerRequestIDFn != nil {
		return r.findByCallerRequestIDFn(ctx, callerService, requestID)
	}
	return nil, nil
}

func (r *grpcDescriptorRepo) List(ctx context.Context, filter repository.DescriptorFilter) ([]*entity.Descriptor, error) {
	if r.listFn != nil {
		return r.listFn(ctx, filter)
	}
	return []*entity.Descriptor{}, nil
}

func (r *grpcDescriptorRepo) DeleteCreatedBefore(context.Context, time.Time, int32) (int64, error) {
	return 0, nil
}

func newGRPCServerForTest(repo *grpcDescriptorRepo) *Server {
	descriptorService := service.NewDescriptorService(
		repo,
		render.NewQRRenderer(),
		config.DescriptorsConfig{QRSize: 300, QRPadding: 10, Retention: 24 * time.Hour, JobBatchSize: 100},
	)
	return NewServer(descriptorService)
}

func mustStruct(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("build struct: %v", err)
	}
	return s
}

func TestHealth(t *testing.T) {
	srv := newGRPCServerForTest(&grpcDescriptorRepo{})

	resp, err := srv.Health(context.Background(), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.GetFields()["status"].GetStringValue() != "ok" {
		t.Fatalf("unexpected health response: %v", resp)
	}
}

func TestAccountToIban(t *testing.T) {
	srv := newGRPCServerForTest(&grpcDescriptorRepo{})

	resp, err := srv.AccountToIban(context.Background(), wrapperspb.String("35-1234567/0710"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.GetValue() != "CZ0907100000350001234567" {
		t.Fatalf("unexpected iban %s", resp.GetValue())
	}

	_, err = srv.AccountToIban(context.Background(), wrapperspb.String("1234567/07100"))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestPreviewDescriptor(t *testing.T) {
	srv := newGRPCServerForTest(&grpcDescriptorRepo{})

	resp, err := srv.PreviewDescriptor(context.Background(), mustStruct(t, map[string]interface{}{
		"account":         "2000145399/0800",
		"amount":          "99.5",
		"variable_symbol": "42",
	}))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var preview types.PreviewDescriptorResponse
	if err := types.FromStruct(resp, &preview); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if preview.Payload != "SPD*1.0*ACC:CZ7908000000002000145399*AM:99.50*CC:CZK*X-VS:42" {
		t.Fatalf("unexpected payload %s", preview.Payload)
	}
}

func TestPreviewDescriptorInvalidArgument(t *testing.T) {
	srv := newGRPCServerForTest(&grpcDescriptorRepo{})

	_, err := srv.PreviewDescriptor(context.Background(), mustStruct(t, map[string]interface{}{}))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}

	_, err = srv.PreviewDescriptor(context.Background(), mustStruct(t, map[string]interface{}{
		"account":  "1/0800",
		"checksum": "xyz",
	}))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestCreateDescriptorUsesMetadataRequestID(t *testing.T) {
	var stored *entity.Descriptor
	repo := &grpcDescriptorRepo{createFn: func(_ context.Context, descriptor *entity.Descriptor) error {
		descriptor.ID = 77
		stored = descriptor
		return nil
	}}
	srv := newGRPCServerForTest(repo)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(requestIDHeader, "grpc-req-1"))
	var resp *structpb.Struct
	_, err := RequestIDInterceptor()(ctx, nil, nil, func(ctx context.Context, _ interface{}) (interface{}, error) {
		var err error
		resp, err = srv.CreateDescriptor(ctx, mustStruct(t, map[string]interface{}{
			"caller_service": "billing",
			"account":        "19-2000145399/0800",
		}))
		return resp, err
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stored == nil || stored.RequestID != "grpc-req-1" {
		t.Fatalf("expected request id from metadata, got %+v", stored)
	}

	var envelope types.DescriptorEnvelopeResponse
	if err := types.FromStruct(resp, &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Descriptor == nil || envelope.Descriptor.IBAN != "CZ6508000000192000145399" {
		t.Fatalf("unexpected descriptor %+v", envelope.Descriptor)
	}
}

func TestCreateDescriptorAlreadyExists(t *testing.T) {
	repo := &grpcDescriptorRepo{createFn: func(context.Context, *entity.Descriptor) error {
		return repository.ErrDescriptorAlreadyExists
	}}
	srv := newGRPCServerForTest(repo)

	_, err := srv.CreateDescriptor(context.Background(), mustStruct(t, map[string]interface{}{
		"request_id":     "req-1",
		"caller_service": "billing",
		"account":        "1/0800",
	}))
	if status.Code(err) != codes.AlreadyExists {
		t.Fatalf("expected AlreadyExists, got %v", err)
	}
}

func TestCreateDescriptorInternal(t *testing.T) {
	repo := &grpcDescriptorRepo{findByCallerRequestIDFn: func(context.Context, string, string) (*entity.Descriptor, error) {
		return nil, errors.New("db down")
	}}
	srv := newGRPCServerForTest(repo)

	_, err := srv.CreateDescriptor(context.Background(), mustStruct(t, map[string]interface{}{
		"request_id":     "req-1",
		"caller_service": "billing",
		"account":        "1/0800",
	}))
	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
}

func TestGetDescriptorNotFound(t *testing.T) {
	srv := newGRPCServerForTest(&grpcDescriptorRepo{})

	_, err := srv.GetDescriptor(context.Background(), wrapperspb.String("6f1c7a52-4a8e-4f7e-9d1e-0c2b7f3a9a10"))
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}

	_, err = srv.GetDescriptor(context.Background(), wrapperspb.String("9"))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestListDescriptors(t *testing.T) {
	var captured repository.DescriptorFilter
	repo := &grpcDescriptorRepo{listFn: func(_ context.Context, filter repository.DescriptorFilter) ([]*entity.Descriptor, error) {
		captured = filter
		return []*entity.Descriptor{{
			Reference:     "6f1c7a52-4a8e-4f7e-9d1e-0c2b7f3a9a10",
			CallerService: "billing",
			IBAN:          "CZ6508000000192000145399",
			Currency:      "CZK",
			Payload:       "SPD*1.0*ACC:CZ6508000000192000145399*CC:CZK",
		}}, nil
	}}
	srv := newGRPCServerForTest(repo)

	resp, err := srv.ListDescriptors(context.Background(), mustStruct(t, map[string]interface{}{
		"caller_service": " billing ",
		"iban":           "cz6508000000192000145399",
		"limit":          20,
		"offset":         5,
	}))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if captured.CallerService != "billing" || captured.IBAN != "CZ6508000000192000145399" || captured.Limit != 20 || captured.Offset != 5 {
		t.Fatalf("unexpected filter %+v", captured)
	}

	var list types.ListDescriptorsResponse
	if err := types.FromStruct(resp, &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Descriptors) != 1 || list.Descriptors[0].Reference != "6f1c7a52-4a8e-4f7e-9d1e-0c2b7f3a9a10" {
		t.Fatalf("unexpected descriptors %+v", list.Descriptors)
	}
}

func TestListDescriptorsDefaultsAndErrors(t *testing.T) {
	var captured repository.DescriptorFilter
	repo := &grpcDescriptorRepo{listFn: func(_ context.Context, filter repository.DescriptorFilter) ([]*entity.Descriptor, error) {
		captured = filter
		return nil, nil
	}}
	srv := newGRPCServerForTest(repo)

	if _, err := srv.ListDescriptors(context.Background(), mustStruct(t, map[string]interface{}{})); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if captured.Limit != 100 {
		t.Fatalf("expected default limit 100, got %d", captured.Limit)
	}

	_, err := srv.ListDescriptors(context.Background(), mustStruct(t, map[string]interface{}{"limit": 1000}))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}

	repo.listFn = func(context.Context, repository.DescriptorFilter) ([]*entity.Descriptor, error) {
		return nil, errors.New("db down")
	}
	_, err = srv.ListDescriptors(context.Background(), mustStruct(t, map[string]interface{}{}))
	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
}

func TestPreviewDescriptorRejectsOversizedAmount(t *testing.T) {
	srv := newGRPCServerForTest(&grpcDescriptorRepo{})

	for _, amount := range []string{"1e100000000", "1e40", "123456789"} {
		_, err := srv.PreviewDescriptor(context.Background(), mustStruct(t, map[string]interface{}{
			"account": "2000145399/0800",
			"amount":  amount,
		}))
		if status.Code(err) != codes.InvalidArgument {
			t.Fatalf("amount %s: expected InvalidArgument, got %v", amount, err)
		}
	}
}
