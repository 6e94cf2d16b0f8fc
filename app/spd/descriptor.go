package spd

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const dueDateLayout = "20060102"

// Field is a single serialized KEY:value pair.
type Field struct {
	Key   Key
	Value string
}

// Descriptor accumulates the fields of one QR Platba payment. The zero
// value is usable but carries no currency; use New to get the CZK default.
//
// Setters that validate return an error and leave the field untouched when
// they reject a value. A Descriptor must not be mutated concurrently;
// String may be called from several goroutines once building is done.
type Descriptor struct {
	account             *string
	alternateAccounts   []string
	amount              *decimal.Decimal
	currency            *string
	dueDate             *time.Time
	message             *string
	variableSymbol      *string
	specificSymbol      *string
	constantSymbol      *string
	reference           *string
	recipientName       *string
	paymentType         *string
	checksum            *string
	notificationChannel *NotificationChannel
	notificationAddress *string
	retryDays           *int
	originatorID        *string
	originatorURL       *string
}

func New() *Descriptor {
	currency := DefaultCurrency
	return &Descriptor{currency: &currency}
}

// NewPayment is a shortcut for the common account + amount + variable
// symbol case. Empty variableSymbol leaves X-VS unset.
func NewPayment(account string, amount decimal.Decimal, variableSymbol string) (*Descriptor, error) {
	d := New()
	if err := d.SetAccount(account); err != nil {
		return nil, err
	}
	d.SetAmount(amount)
	if variableSymbol != "" {
		if err := d.SetVariableSymbol(variableSymbol); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// SetAccount stores the IBAN derived from a local "[prefix-]number/bank"
// account number.
func (d *Descriptor) SetAccount(account string) error {
	iban, err := AccountToIban(account)
	if err != nil {
		return err
	}
	d.account = &iban
	return nil
}

// SetIBAN stores an IBAN as given (after whitespace removal), for accounts
// that are not Czech or are already converted.
func (d *Descriptor) SetIBAN(iban string) error {
	normalized := NormalizeIBAN(iban)
	if err := ValidateIBAN(normalized); err != nil {
		return err
	}
	d.account = &normalized
	return nil
}

// SetAlternateAccounts accepts local account numbers or IBANs. Calling it
// without arguments clears the field.
func (d *Descriptor) SetAlternateAccounts(accounts ...string) error {
	if len(accounts) == 0 {
		d.alternateAccounts = nil
		return nil
	}
	ibans := make([]string, 0, len(accounts))
	for _, account := range accounts {
		iban, err := resolveAccount(account)
		if err != nil {
			return err
		}
		ibans = append(ibans, iban)
	}
	if joined := strings.Join(ibans, ","); len(joined) > maxAlternateAccountsLen {
		return validationError(KeyAlternateAccounts, "alternate accounts longer than %d characters", maxAlternateAccountsLen)
	}
	d.alternateAccounts = ibans
	return nil
}

func resolveAccount(account string) (string, error) {
	if strings.Contains(account, "/") {
		return AccountToIban(account)
	}
	iban := NormalizeIBAN(account)
	if err := ValidateIBAN(iban); err != nil {
		return "", err
	}
	return iban, nil
}

func (d *Descriptor) SetAmount(amount decimal.Decimal) *Descriptor {
	d.amount = &amount
	return d
}

func (d *Descriptor) SetAmountFloat(amount float64) *Descriptor {
	return d.SetAmount(decimal.NewFromFloat(amount))
}

func (d *Descriptor) SetCurrency(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return validationError(KeyCurrency, "currency must be exactly 3 letters")
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return validationError(KeyCurrency, "currency must be exactly 3 letters")
		}
	}
	d.currency = &code
	return nil
}

func (d *Descriptor) SetDueDate(date time.Time) *Descriptor {
	d.dueDate = &date
	return d
}

// SetMessage strips diacritics and keeps at most 60 characters.
func (d *Descriptor) SetMessage(message string) *Descriptor {
	msg := truncateRunes(StripDiacritics(message), maxMessageLen)
	d.message = &msg
	return d
}

func (d *Descriptor) SetVariableSymbol(symbol string) error {
	return setSymbol(&d.variableSymbol, KeyVariableSymbol, symbol)
}

func (d *Descriptor) SetSpecificSymbol(symbol string) error {
	return setSymbol(&d.specificSymbol, KeySpecificSymbol, symbol)
}

func (d *Descriptor) SetConstantSymbol(symbol string) error {
	return setSymbol(&d.constantSymbol, KeyConstantSymbol, symbol)
}

func setSymbol(dst **string, key Key, symbol string) error {
	if utf8.RuneCountInString(symbol) > maxSymbolLen {
		return validationError(key, "symbol too long")
	}
	*dst = &symbol
	return nil
}

func (d *Descriptor) SetReference(reference string) error {
	return setBounded(&d.reference, KeyReference, reference, maxReferenceLen)
}

func (d *Descriptor) SetRecipientName(name string) error {
	return setBounded(&d.recipientName, KeyRecipientName, name, maxRecipientNameLen)
}

func (d *Descriptor) SetPaymentType(paymentType string) error {
	if paymentType == "" {
		return validationError(KeyPaymentType, "payment type is empty")
	}
	return setBounded(&d.paymentType, KeyPaymentType, paymentType, maxPaymentTypeLen)
}

// SetChecksum stores a precomputed CRC32 as 8 hexadecimal digits.
func (d *Descriptor) SetChecksum(checksum string) error {
	checksum = strings.ToUpper(checksum)
	if len(checksum) != checksumLen {
		return validationError(KeyChecksum, "checksum must be %d hex digits", checksumLen)
	}
	if _, err := strconv.ParseUint(checksum, 16, 32); err != nil {
		return validationError(KeyChecksum, "checksum must be %d hex digits", checksumLen)
	}
	d.checksum = &checksum
	return nil
}

func (d *Descriptor) SetNotificationChannel(channel NotificationChannel) error {
	if channel != NotificationPhone && channel != NotificationEmail {
		return validationError(KeyNotificationChannel, "channel must be P or E")
	}
	d.notificationChannel = &channel
	return nil
}

func (d *Descriptor) SetNotificationAddress(address string) error {
	return setBounded(&d.notificationAddress, KeyNotificationAddress, address, maxNotificationAddressLen)
}

// SetRetryDays sets how many days the payer's bank retries a failed
// payment.
func (d *Descriptor) SetRetryDays(days int) error {
	if days < 0 || days > maxRetryDays {
		return validationError(KeyRetryDays, "retry days must be between 0 and %d", maxRetryDays)
	}
	d.retryDays = &days
	return nil
}

func (d *Descriptor) SetOriginatorID(id string) error {
	return setBounded(&d.originatorID, KeyOriginatorID, id, maxOriginatorIDLen)
}

func (d *Descriptor) SetOriginatorURL(url string) error {
	return setBounded(&d.originatorURL, KeyOriginatorURL, url, maxOriginatorURLLen)
}

func setBounded(dst **string, key Key, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return validationError(key, "value longer than %d characters", limit)
	}
	*dst = &value
	return nil
}

// IBAN returns the stored account IBAN, or "" when no account is set.
func (d *Descriptor) IBAN() string {
	if d.account == nil {
		return ""
	}
	return *d.account
}

// Fields returns the present fields in serialization order.
func (d *Descriptor) Fields() []Field {
	fields := make([]Field, 0, len(Keys))
	for _, key := range Keys {
		if value, ok := d.value(key); ok {
			fields = append(fields, Field{Key: key, Value: value})
		}
	}
	return fields
}

func (d *Descriptor) value(key Key) (string, bool) {
	switch key {
	case KeyAccount:
		return deref(d.account)
	case KeyAlternateAccounts:
		if d.alternateAccounts == nil {
			return "", false
		}
		return strings.Join(d.alternateAccounts, ","), true
	case KeyAmount:
		if d.amount == nil {
			return "", false
		}
		return d.amount.StringFixed(2), true
	case KeyCurrency:
		return deref(d.currency)
	case KeyDueDate:
		if d.dueDate == nil {
			return "", false
		}
		return d.dueDate.Format(dueDateLayout), true
	case KeyMessage:
		return deref(d.message)
	case KeyVariableSymbol:
		return deref(d.variableSymbol)
	case KeySpecificSymbol:
		return deref(d.specificSymbol)
	case KeyConstantSymbol:
		return deref(d.constantSymbol)
	case KeyReference:
		return deref(d.reference)
	case KeyRecipientName:
		return deref(d.recipientName)
	case KeyPaymentType:
		return deref(d.paymentType)
	case KeyChecksum:
		return deref(d.checksum)
	case KeyNotificationChannel:
		if d.notificationChannel == nil {
			return "", false
		}
		return string(*d.notificationChannel), true
	case KeyNotificationAddress:
		return deref(d.notificationAddress)
	case KeyRetryDays:
		if d.retryDays == nil {
			return "", false
		}
		return strconv.Itoa(*d.retryDays), true
	case KeyOriginatorID:
		return deref(d.originatorID)
	case KeyOriginatorURL:
		return deref(d.originatorURL)
	default:
		return "", false
	}
}

func deref(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	return *v, true
}

// String serializes the descriptor, e.g.
// "SPD*1.0*ACC:CZ6508000000192000145399*AM:450.00*CC:CZK".
// Values are not escaped.
func (d *Descriptor) String() string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString(separator)
	b.WriteString(Version)
	for _, field := range d.Fields() {
		b.WriteString(separator)
		b.WriteString(string(field.Key))
		b.WriteString(valueSeparator)
		b.WriteString(field.Value)
	}
	return b.String()
}
