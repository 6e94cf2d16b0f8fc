package entity

import "time"

type Descriptor struct {
	ID uint64

	Reference     string
	RequestID     string
	CallerService string

	IBAN           string
	Amount         *string
	Currency       string
	VariableSymbol *string
	DueDate        *time.Time
	Message        *string

	Payload string

	CreatedAt time.Time
}
