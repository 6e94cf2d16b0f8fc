package mapper

import (
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-qrplatba/app/entity"
	"github.com/vibast-solutions/ms-go-qrplatba/app/spd"
)

func TestDescriptorToResponse(t *testing.T) {
	amount := "450.00"
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	item := &entity.Descriptor{
		Reference:     "6f1c7a52-4a8e-4f7e-9d1e-0c2b7f3a9a10",
		RequestID:     "req-1",
		CallerService: "billing",
		IBAN:          "CZ6508000000192000145399",
		Amount:        &amount,
		Currency:      "CZK",
		DueDate:       &due,
		Payload:       "SPD*1.0*ACC:CZ6508000000192000145399*AM:450.00*CC:CZK*DT:20260315",
		CreatedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	res := DescriptorToResponse(item)
	if res.Amount != "450.00" || res.DueDate != "2026-03-15" || res.CreatedAt != "2026-03-01T10:00:00Z" {
		t.Fatalf("unexpected response: %+v", res)
	}
	if res.VariableSymbol != "" || res.Message != "" {
		t.Fatalf("expected empty optional fields, got %+v", res)
	}
	if DescriptorToResponse(nil) != nil {
		t.Fatal("expected nil for nil descriptor")
	}
}

func TestPreviewToResponse(t *testing.T) {
	d := spd.New()
	if err := d.SetAccount("19-2000145399/0800"); err != nil {
		t.Fatalf("set account: %v", err)
	}

	res := PreviewToResponse(d)
	if res.Payload != "SPD*1.0*ACC:CZ6508000000192000145399*CC:CZK" {
		t.Fatalf("unexpected payload %s", res.Payload)
	}
	if len(res.Fields) != 2 || res.Fields[0].Key != "ACC" || res.Fields[1].Value != "CZK" {
		t.Fatalf("unexpected fields %+v", res.Fields)
	}
}

func TestAccountToIbanResponse(t *testing.T) {
	res := AccountToIbanResponse("19-2000145399/0800", "CZ6508000000192000145399")
	if res.IBANDisplay != "CZ65 0800 0000 1920 0014 5399" {
		t.Fatalf("unexpected display %q", res.IBANDisplay)
	}
}
