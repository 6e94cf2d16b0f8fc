package types

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/vibast-solutions/ms-go-qrplatba/app/spd"
)

const (
	DueDateLayout = "2006-01-02"

	QRFormatPNG     = "png"
	QRFormatDataURI = "datauri"
	QRFormatHTML    = "html"

	maxAmountScale = 20
)

type EncodeDescriptorRequest struct {
	RequestID     string `json:"request_id,omitempty" yaml:"request_id,omitempty"`
	CallerService string `json:"caller_service,omitempty" yaml:"caller_service,omitempty"`

	Account           string           `json:"account,omitempty" yaml:"account,omitempty"`
	IBAN              string           `json:"iban,omitempty" yaml:"iban,omitempty"`
	AlternateAccounts []string         `json:"alternate_accounts,omitempty" yaml:"alternate_accounts,omitempty"`
	Amount            *decimal.Decimal `json:"amount,omitempty" yaml:"amount,omitempty"`
	Currency          string           `json:"currency,omitempty" yaml:"currency,omitempty"`
	DueDate           string           `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Message           string           `json:"message,omitempty" yaml:"message,omitempty"`

	VariableSymbol string `json:"variable_symbol,omitempty" yaml:"variable_symbol,omitempty"`
	SpecificSymbol string `json:"specific_symbol,omitempty" yaml:"specific_symbol,omitempty"`
	ConstantSymbol string `json:"constant_symbol,omitempty" yaml:"constant_symbol,omitempty"`

	RecipientReference  string `json:"recipient_reference,omitempty" yaml:"recipient_reference,omitempty"`
	RecipientName       string `json:"recipient_name,omitempty" yaml:"recipient_name,omitempty"`
	PaymentType         string `json:"payment_type,omitempty" yaml:"payment_type,omitempty"`
	Checksum            string `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	NotificationChannel string `json:"notification_channel,omitempty" yaml:"notification_channel,omitempty"`
	NotificationAddress string `json:"notification_address,omitempty" yaml:"notification_address,omitempty"`
	RetryDays           *int   `json:"retry_days,omitempty" yaml:"retry_days,omitempty"`
	OriginatorID        string `json:"originator_id,omitempty" yaml:"originator_id,omitempty"`
	OriginatorURL       string `json:"originator_url,omitempty" yaml:"originator_url,omitempty"`
}

func NewEncodeDescriptorRequestFromContext(ctx echo.Context) (*EncodeDescriptorRequest, error) {
	var body EncodeDescriptorRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.RequestID = strings.TrimSpace(body.RequestID)
	if body.RequestID == "" {
		body.RequestID = strings.TrimSpace(ctx.Request().Header.Get(echo.HeaderXRequestID))
	}
	body.Normalize()

	return &body, nil
}

// Normalize trims the identifying fields. Free-text fields are left as sent.
func (r *EncodeDescriptorRequest) Normalize() {
	r.RequestID = strings.TrimSpace(r.RequestID)
	r.CallerService = strings.TrimSpace(r.CallerService)
	r.Account = strings.TrimSpace(r.Account)
	r.IBAN = strings.TrimSpace(r.IBAN)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	r.DueDate = strings.TrimSpace(r.DueDate)
	r.NotificationChannel = strings.ToUpper(strings.TrimSpace(r.NotificationChannel))
}

func (r *EncodeDescriptorRequest) Validate() error {
	if r.Account == "" && r.IBAN == "" {
		return errors.New("account or iban is required")
	}
	if r.Account != "" && r.IBAN != "" {
		return errors.New("account and iban are mutually exclusive")
	}
	if r.Account != "" && !strings.Contains(r.Account, "/") {
		return errors.New("account must be in prefix-number/bank format")
	}
	if r.Amount != nil {
		if err := validateAmount(*r.Amount); err != nil {
			return err
		}
	}
	if r.DueDate != "" {
		if _, err := r.ParsedDueDate(); err != nil {
			return errors.New("due_date must be YYYY-MM-DD")
		}
	}
	return nil
}

// validateAmount rejects amounts whose two-decimal form would not fit the AM
// field. Digits and exponent are checked before the value is formatted.
func validateAmount(amount decimal.Decimal) error {
	exp := int(amount.Exponent())
	if exp < -maxAmountScale || amount.NumDigits()+exp > spd.MaxAmountLen {
		return errors.New("amount is out of range")
	}
	if len(amount.StringFixed(2)) > spd.MaxAmountLen {
		return errors.New("amount is out of range")
	}
	return nil
}

func (r *EncodeDescriptorRequest) ParsedDueDate() (*time.Time, error) {
	if r.DueDate == "" {
		return nil, nil
	}
	date, err := time.Parse(DueDateLayout, r.DueDate)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

type GetDescriptorRequest struct {
	Reference string
}

func NewGetDescriptorRequestFromContext(ctx echo.Context) (*GetDescriptorRequest, error) {
	return &GetDescriptorRequest{Reference: strings.TrimSpace(ctx.Param("reference"))}, nil
}

func (r *GetDescriptorRequest) Validate() error {
	return validateReference(r.Reference)
}

type ListDescriptorsRequest struct {
	CallerService string `json:"caller_service,omitempty"`
	IBAN          string `json:"iban,omitempty"`
	Limit         int32  `json:"limit,omitempty"`
	Offset        int32  `json:"offset,omitempty"`
}

func NewListDescriptorsRequestFromContext(ctx echo.Context) (*ListDescriptorsRequest, error) {
	req := &ListDescriptorsRequest{
		CallerService: strings.TrimSpace(ctx.QueryParam("caller_service")),
		IBAN:          strings.ToUpper(strings.TrimSpace(ctx.QueryParam("iban"))),
		Limit:         100,
		Offset:        0,
	}

	if limitRaw := strings.TrimSpace(ctx.QueryParam("limit")); limitRaw != "" {
		limit, err := strconv.ParseInt(limitRaw, 10, 32)
		if err != nil {
			return nil, err
		}
		req.Limit = int32(limit)
	}

	if offsetRaw := strings.TrimSpace(ctx.QueryParam("offset")); offsetRaw != "" {
		offset, err := strconv.ParseInt(offsetRaw, 10, 32)
		if err != nil {
			return nil, err
		}
		req.Offset = int32(offset)
	}

	return req, nil
}

func (r *ListDescriptorsRequest) GetCallerService() string { return r.CallerService }
func (r *ListDescriptorsRequest) GetIBAN() string          { return r.IBAN }
func (r *ListDescriptorsRequest) GetLimit() int32          { return r.Limit }
func (r *ListDescriptorsRequest) GetOffset() int32         { return r.Offset }

func (r *ListDescriptorsRequest) Validate() error {
	if r.Limit == 0 {
		r.Limit = 100
	}
	if r.Limit <= 0 || r.Limit > 500 {
		return errors.New("limit must be between 1 and 500")
	}
	if r.Offset < 0 {
		return errors.New("offset must be >= 0")
	}
	return nil
}

type RenderDescriptorRequest struct {
	Reference string
	Size      int
	Padding   int
	Format    string
}

// NewRenderDescriptorRequestFromContext leaves Size at 0 and Padding at -1
// when absent; the service fills in configured defaults.
func NewRenderDescriptorRequestFromContext(ctx echo.Context) (*RenderDescriptorRequest, error) {
	req := &RenderDescriptorRequest{
		Reference: strings.TrimSpace(ctx.Param("reference")),
		Format:    strings.ToLower(strings.TrimSpace(ctx.QueryParam("format"))),
		Padding:   -1,
	}
	if req.Format == "" {
		req.Format = QRFormatPNG
	}

	if sizeRaw := strings.TrimSpace(ctx.QueryParam("size")); sizeRaw != "" {
		size, err := strconv.Atoi(sizeRaw)
		if err != nil {
			return nil, err
		}
		req.Size = size
	}
	if paddingRaw := strings.TrimSpace(ctx.QueryParam("padding")); paddingRaw != "" {
		padding, err := strconv.Atoi(paddingRaw)
		if err != nil {
			return nil, err
		}
		req.Padding = padding
	}

	return req, nil
}

func (r *RenderDescriptorRequest) Validate() error {
	if err := validateReference(r.Reference); err != nil {
		return err
	}
	switch r.Format {
	case QRFormatPNG, QRFormatDataURI, QRFormatHTML:
	default:
		return errors.New("format must be png, datauri, or html")
	}
	if r.Size < 0 {
		return errors.New("size must be >= 0")
	}
	if r.Padding < -1 {
		return errors.New("padding must be >= 0")
	}
	return nil
}

type AccountToIbanRequest struct {
	Account string `json:"account"`
}

func NewAccountToIbanRequestFromContext(ctx echo.Context) (*AccountToIbanRequest, error) {
	var body AccountToIbanRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Account = strings.TrimSpace(body.Account)
	return &body, nil
}

func (r *AccountToIbanRequest) Validate() error {
	if r.Account == "" {
		return errors.New("account is required")
	}
	if !strings.Contains(r.Account, "/") {
		return errors.New("account must be in prefix-number/bank format")
	}
	return nil
}

func validateReference(reference string) error {
	if reference == "" {
		return errors.New("reference is required")
	}
	if _, err := uuid.Parse(reference); err != nil {
		return errors.New("invalid descriptor reference")
	}
	return nil
}
