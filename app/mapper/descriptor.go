package mapper

import (
	"time"

	"github.com/vibast-solutions/ms-go-qrplatba/app/entity"
	"github.com/vibast-solutions/ms-go-qrplatba/app/spd"
	"github.com/vibast-solutions/ms-go-qrplatba/app/types"
)

func DescriptorToResponse(item *entity.Descriptor) *types.Descriptor {
	if item == nil {
		return nil
	}

	result := &types.Descriptor{
		Reference:      item.Reference,
		RequestID:      item.RequestID,
		CallerService:  item.CallerService,
		IBAN:           item.IBAN,
		Amount:         derefString(item.Amount),
		Currency:       item.Currency,
		VariableSymbol: derefString(item.VariableSymbol),
		Message:        derefString(item.Message),
		Payload:        item.Payload,
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
	}
	if item.DueDate != nil {
		result.DueDate = item.DueDate.Format(types.DueDateLayout)
	}
	return result
}

func DescriptorsToResponse(items []*entity.Descriptor) []*types.Descriptor {
	result := make([]*types.Descriptor, 0, len(items))
	for _, item := range items {
		result = append(result, DescriptorToResponse(item))
	}
	return result
}

func PreviewToResponse(d *spd.Descriptor) *types.PreviewDescriptorResponse {
	fields := d.Fields()
	result := &types.PreviewDescriptorResponse{
		Payload: d.String(),
		IBAN:    d.IBAN(),
		Fields:  make([]*types.FieldResponse, 0, len(fields)),
	}
	for _, field := range fields {
		result.Fields = append(result.Fields, &types.FieldResponse{Key: string(field.Key), Value: field.Value})
	}
	return result
}

func AccountToIbanResponse(account, iban string) *types.AccountToIbanResponse {
	return &types.AccountToIbanResponse{
		Account:     account,
		IBAN:        iban,
		IBANDisplay: spd.FormatIBAN(iban),
	}
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
