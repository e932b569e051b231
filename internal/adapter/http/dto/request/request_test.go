package request

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

func init() {
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

func bind(t *testing.T, body string, obj any) error {
	t.Helper()
	return binding.JSON.BindBody([]byte(body), obj)
}

func TestGeneratePrefacturationRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var r GeneratePrefacturationRequest
		err := bind(t, `{"order_id":" order-1 ","carrier_id":"c-1","client_id":"cl-1","calculation":{"base_price":500,"distance_price":100,"tva":0.2,"distance_km":120}}`, &r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		in := r.ToInput("orders")
		if in.OrderID != "order-1" || in.Actor != "orders" {
			t.Fatalf("unexpected input: %+v", in)
		}
		if in.Calculation.DistanceKm == nil || *in.Calculation.DistanceKm != 120 {
			t.Fatalf("expected distance quantity, got %+v", in.Calculation)
		}
	})

	t.Run("blank order id", func(t *testing.T) {
		var r GeneratePrefacturationRequest
		if err := bind(t, `{"order_id":"   ","carrier_id":"c-1","client_id":"cl-1"}`, &r); err == nil {
			t.Fatalf("expected validation error")
		}
	})

	t.Run("tva out of range", func(t *testing.T) {
		var r GeneratePrefacturationRequest
		if err := bind(t, `{"order_id":"o","carrier_id":"c","client_id":"cl","calculation":{"tva":20}}`, &r); err == nil {
			t.Fatalf("expected validation error")
		}
	})
}

func TestAttachInvoiceRequest(t *testing.T) {
	t.Run("declared total falls back to invoice total", func(t *testing.T) {
		var r AttachInvoiceRequest
		if err := bind(t, `{"invoice_number":"INV-1","total_ht":700,"match_score":92}`, &r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		inv := r.ToEntity()
		if inv.Declared.TotalHT == nil || *inv.Declared.TotalHT != 700 {
			t.Fatalf("expected declared total 700, got %+v", inv.Declared)
		}
	})

	t.Run("explicit declared total wins", func(t *testing.T) {
		var r AttachInvoiceRequest
		if err := bind(t, `{"invoice_number":"INV-1","total_ht":700,"declared":{"total_ht":690}}`, &r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := *r.ToEntity().Declared.TotalHT; got != 690 {
			t.Fatalf("expected 690, got %v", got)
		}
	})

	t.Run("match score above 100", func(t *testing.T) {
		var r AttachInvoiceRequest
		if err := bind(t, `{"invoice_number":"INV-1","match_score":101}`, &r); err == nil {
			t.Fatalf("expected validation error")
		}
	})
}

func TestUnblockRequest(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"by type", `{"block_type":"vigilance","reason":"renewed offline"}`, false},
		{"by index", `{"block_index":0,"reason":"renewed offline"}`, false},
		{"unknown type", `{"block_type":"weather","reason":"x"}`, true},
		{"no target", `{"reason":"renewed offline"}`, true},
		{"blank reason", `{"block_type":"vigilance","reason":"  "}`, true},
		{"negative index", `{"block_index":-1,"reason":"x"}`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r UnblockRequest
			err := bind(t, tc.body, &r)
			if (err != nil) != tc.wantErr {
				t.Fatalf("wantErr=%v, got %v", tc.wantErr, err)
			}
		})
	}

	var r UnblockRequest
	if err := bind(t, `{"block_index":2,"reason":"ok","block_type":"late"}`, &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := r.ToInput("ops")
	if in.Index == nil || *in.Index != 2 || in.Type != "late" || in.Actor != "ops" {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestContestDiscrepancyRequest(t *testing.T) {
	var r ContestDiscrepancyRequest
	if err := bind(t, `{"reason":"wrong distance","documents":["s3://cmr.pdf",""]}`, &r); err == nil {
		t.Fatalf("expected blank document to be rejected")
	}
	if err := bind(t, `{"reason":"wrong distance","documents":["s3://cmr.pdf"]}`, &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in := r.ToInput("carrier-1"); len(in.Documents) != 1 || in.Actor != "carrier-1" {
		t.Fatalf("unexpected input: %+v", in)
	}
}
