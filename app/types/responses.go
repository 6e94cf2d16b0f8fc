package types

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type FieldResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Descriptor struct {
	Reference      string `json:"reference"`
	RequestID      string `json:"request_id"`
	CallerService  string `json:"caller_service"`
	IBAN           string `json:"iban"`
	Amount         string `json:"amount,omitempty"`
	Currency       string `json:"currency"`
	VariableSymbol string `json:"variable_symbol,omitempty"`
	DueDate        string `json:"due_date,omitempty"`
	Message        string `json:"message,omitempty"`
	Payload        string `json:"payload"`
	CreatedAt      string `json:"created_at"`
}

type DescriptorEnvelopeResponse struct {
	Descriptor *Descriptor `json:"descriptor"`
}

type ListDescriptorsResponse struct {
	Descriptors []*Descriptor `json:"descriptors"`
}

type PreviewDescriptorResponse struct {
	Payload string           `json:"payload"`
	IBAN    string           `json:"iban"`
	Fields  []*FieldResponse `json:"fields"`
}

type AccountToIbanResponse struct {
	Account     string `json:"account"`
	IBAN        string `json:"iban"`
	IBANDisplay string `json:"iban_display"`
}

type QRCodeResponse struct {
	Reference string `json:"reference"`
	Format    string `json:"format"`
	Content   string `json:"content"`
}
