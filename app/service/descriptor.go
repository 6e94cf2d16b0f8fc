package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-qrplatba/app/entity"
	"github.com/vibast-solutions/ms-go-qrplatba/app/factory"
	"github.com/vibast-solutions/ms-go-qrplatba/app/render"
	"github.com/vibast-solutions/ms-go-qrplatba/app/repository"
	"github.com/vibast-solutions/ms-go-qrplatba/app/spd"
	"github.com/vibast-solutions/ms-go-qrplatba/app/types"
	"github.com/vibast-solutions/ms-go-qrplatba/config"
)

const (
	defaultListLimit = int32(100)
	defaultBatchSize = int32(500)
)

type listDescriptorsRequest interface {
	GetCallerService() string
	GetIBAN() string
	GetLimit() int32
	GetOffset() int32
}

type descriptorRepository interface {
	Create(ctx context.Context, descriptor *entity.Descriptor) error
	FindByReference(ctx context.Context, reference string) (*entity.Descriptor, error)
	FindByCallerRequestID(ctx context.Context, callerService, requestID string) (*entity.Descriptor, error)
	List(ctx context.Context, filter repository.DescriptorFilter) ([]*entity.Descriptor, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time, limit int32) (int64, error)
}

type qrRenderer interface {
	PNG(text string, opts render.Options) ([]byte, error)
	DataURI(text string, opts render.Options) (string, error)
	HTMLTag(text string, opts render.Options) (string, error)
}

type RenderedQRCode struct {
	Descriptor *entity.Descriptor
	Format     string
	PNG        []byte
	Content    string
}

type DescriptorService struct {
	descriptorRepo descriptorRepository
	renderer       qrRenderer
	descriptorsCfg config.DescriptorsConfig
	logger         logrus.FieldLogger
}

func NewDescriptorService(
	descriptorRepo descriptorRepository,
	renderer qrRenderer,
	descriptorsCfg config.DescriptorsConfig,
) *DescriptorService {
	return &DescriptorService{
		descriptorRepo: descriptorRepo,
		renderer:       renderer,
		descriptorsCfg: descriptorsCfg,
		logger:         factory.NewModuleLogger("descriptors-service"),
	}
}

func (s *DescriptorService) AccountToIban(account string) (string, error) {
	return spd.AccountToIban(account)
}

// PreviewDescriptor encodes the request without storing anything.
func (s *DescriptorService) PreviewDescriptor(req *types.EncodeDescriptorRequest) (*spd.Descriptor, error) {
	return BuildDescriptor(req)
}

func (s *DescriptorService) CreateDescriptor(ctx context.Context, req *types.EncodeDescriptorRequest) (*entity.Descriptor, error) {
	requestID := strings.TrimSpace(req.RequestID)
	callerService := strings.TrimSpace(req.CallerService)
	if requestID == "" || callerService == "" {
		return nil, fmt.Errorf("%w: request_id and caller_service are required", ErrInvalidRequest)
	}

	existing, err := s.descriptorRepo.FindByCallerRequestID(ctx, callerService, requestID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	descriptor, err := BuildDescriptor(req)
	if err != nil {
		return nil, err
	}

	dueDate, _ := req.ParsedDueDate()
	item := &entity.Descriptor{
		Reference:      uuid.NewString(),
		RequestID:      requestID,
		CallerService:  callerService,
		IBAN:           descriptor.IBAN(),
		Amount:         fieldValue(descriptor, spd.KeyAmount),
		Currency:       spd.DefaultCurrency,
		VariableSymbol: fieldValue(descriptor, spd.KeyVariableSymbol),
		DueDate:        dueDate,
		Message:        fieldValue(descriptor, spd.KeyMessage),
		Payload:        descriptor.String(),
		CreatedAt:      time.Now().UTC(),
	}
	if currency := fieldValue(descriptor, spd.KeyCurrency); currency != nil {
		item.Currency = *currency
	}

	if err := s.descriptorRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDescriptorAlreadyExists) {
			return nil, ErrDescriptorAlreadyExists
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"reference":      item.Reference,
		"caller_service": item.CallerService,
		"request_id":     item.RequestID,
	}).Info("Descriptor created")

	return item, nil
}

func (s *DescriptorService) GetDescriptor(ctx context.Context, reference string) (*entity.Descriptor, error) {
	item, err := s.descriptorRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrDescriptorNotFound
	}
	return item, nil
}

func (s *DescriptorService) ListDescriptors(ctx context.Context, req listDescriptorsRequest) ([]*entity.Descriptor, error) {
	limit := req.GetLimit()
	if limit <= 0 {
		limit = defaultListLimit
	}

	return s.descriptorRepo.List(ctx, repository.DescriptorFilter{
		CallerService: strings.TrimSpace(req.GetCallerService()),
		IBAN:          strings.ToUpper(strings.TrimSpace(req.GetIBAN())),
		Limit:         limit,
		Offset:        req.GetOffset(),
	})
}

func (s *DescriptorService) RenderDescriptor(ctx context.Context, req *types.RenderDescriptorRequest) (*RenderedQRCode, error) {
	item, err := s.GetDescriptor(ctx, req.Reference)
	if err != nil {
		return nil, err
	}

	opts := s.renderOptions(req.Size, req.Padding)
	result := &RenderedQRCode{Descriptor: item, Format: req.Format}

	switch req.Format {
	case types.QRFormatPNG:
		result.PNG, err = s.renderer.PNG(item.Payload, opts)
	case types.QRFormatDataURI:
		result.Content, err = s.renderer.DataURI(item.Payload, opts)
	case types.QRFormatHTML:
		result.Content, err = s.renderer.HTMLTag(item.Payload, opts)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidRequest, req.Format)
	}
	if err != nil {
		if errors.Is(err, render.ErrInvalidOptions) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
		}
		return nil, err
	}

	return result, nil
}

func (s *DescriptorService) renderOptions(size, padding int) render.Options {
	opts := render.DefaultOptions()
	if s.descriptorsCfg.QRSize > 0 {
		opts.Size = s.descriptorsCfg.QRSize
	}
	if s.descriptorsCfg.QRPadding >= 0 {
		opts.Padding = s.descriptorsCfg.QRPadding
	}
	if size > 0 {
		opts.Size = size
	}
	if padding >= 0 {
		opts.Padding = padding
	}
	return opts
}

func (s *DescriptorService) batchSize() int32 {
	if s.descriptorsCfg.JobBatchSize > 0 {
		return s.descriptorsCfg.JobBatchSize
	}
	return defaultBatchSize
}

// BuildDescriptor maps a request onto a fresh descriptor. Only non-empty
// request fields are set, so absent fields stay out of the payload.
func BuildDescriptor(req *types.EncodeDescriptorRequest) (*spd.Descriptor, error) {
	d := spd.New()

	var err error
	if req.IBAN != "" {
		err = d.SetIBAN(req.IBAN)
	} else {
		err = d.SetAccount(req.Account)
	}
	if err != nil {
		return nil, err
	}

	if len(req.AlternateAccounts) > 0 {
		if err := d.SetAlternateAccounts(req.AlternateAccounts...); err != nil {
			return nil, err
		}
	}
	if req.Amount != nil {
		d.SetAmount(*req.Amount)
	}
	if req.Currency != "" {
		if err := d.SetCurrency(req.Currency); err != nil {
			return nil, err
		}
	}

	dueDate, err := req.ParsedDueDate()
	if err != nil {
		return nil, fmt.Errorf("%w: due_date must be YYYY-MM-DD", ErrInvalidRequest)
	}
	if dueDate != nil {
		d.SetDueDate(*dueDate)
	}
	if req.Message != "" {
		d.SetMessage(req.Message)
	}

	optional := []struct {
		value string
		set   func(string) error
	}{
		{req.VariableSymbol, d.SetVariableSymbol},
		{req.SpecificSymbol, d.SetSpecificSymbol},
		{req.ConstantSymbol, d.SetConstantSymbol},
		{req.RecipientReference, d.SetReference},
		{req.RecipientName, d.SetRecipientName},
		{req.PaymentType, d.SetPaymentType},
		{req.Checksum, d.SetChecksum},
		{req.NotificationAddress, d.SetNotificationAddress},
		{req.OriginatorID, d.SetOriginatorID},
		{req.OriginatorURL, d.SetOriginatorURL},
	}
	for _, field := range optional {
		if field.value == "" {
			continue
		}
		if err := field.set(field.value); err != nil {
			return nil, err
		}
	}

	if req.NotificationChannel != "" {
		if err := d.SetNotificationChannel(spd.NotificationChannel(req.NotificationChannel)); err != nil {
			return nil, err
		}
	}
	if req.RetryDays != nil {
		if err := d.SetRetryDays(*req.RetryDays); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// IsInputError reports whether err was caused by the caller's input rather
// than by the service.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, spd.ErrInvalidAccount) ||
		errors.Is(err, spd.ErrInvalidField)
}

func fieldValue(d *spd.Descriptor, key spd.Key) *string {
	for _, field := range d.Fields() {
		if field.Key == key {
			value := field.Value
			return &value
		}
	}
	return nil
}
