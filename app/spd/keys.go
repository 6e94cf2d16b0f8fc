package spd

const (
	Header          = "SPD"
	Version         = "1.0"
	DefaultCurrency = "CZK"

	separator      = "*"
	valueSeparator = ":"
)

// Key is the wire name of a descriptor field.
type Key string

const (
	KeyAccount             Key = "ACC"
	KeyAlternateAccounts   Key = "ALT-ACC"
	KeyAmount              Key = "AM"
	KeyCurrency            Key = "CC"
	KeyDueDate             Key = "DT"
	KeyMessage             Key = "MSG"
	KeyVariableSymbol      Key = "X-VS"
	KeySpecificSymbol      Key = "X-SS"
	KeyConstantSymbol      Key = "X-KS"
	KeyReference           Key = "RF"
	KeyRecipientName       Key = "RN"
	KeyPaymentType         Key = "PT"
	KeyChecksum            Key = "CRC32"
	KeyNotificationChannel Key = "NT"
	KeyNotificationAddress Key = "NTA"
	KeyRetryDays           Key = "X-PER"
	KeyOriginatorID        Key = "X-ID"
	KeyOriginatorURL       Key = "X-URL"
)

// Keys lists every field in serialization order.
var Keys = []Key{
	KeyAccount,
	KeyAlternateAccounts,
	KeyAmount,
	KeyCurrency,
	KeyDueDate,
	KeyMessage,
	KeyVariableSymbol,
	KeySpecificSymbol,
	KeyConstantSymbol,
	KeyReference,
	KeyRecipientName,
	KeyPaymentType,
	KeyChecksum,
	KeyNotificationChannel,
	KeyNotificationAddress,
	KeyRetryDays,
	KeyOriginatorID,
	KeyOriginatorURL,
}

// MaxAmountLen bounds the formatted AM value, sign and decimal point
// included.
const MaxAmountLen = 10

// Field limits, in characters.
const (
	maxAlternateAccountsLen   = 93
	maxMessageLen             = 60
	maxSymbolLen              = 10
	maxReferenceLen           = 16
	maxRecipientNameLen       = 35
	maxPaymentTypeLen         = 3
	checksumLen               = 8
	maxNotificationAddressLen = 320
	maxRetryDays              = 30
	maxOriginatorIDLen        = 20
	maxOriginatorURLLen       = 140
)

// NotificationChannel selects how the payee is notified (NT field).
type NotificationChannel string

const (
	NotificationPhone NotificationChannel = "P"
	NotificationEmail NotificationChannel = "E"
)
