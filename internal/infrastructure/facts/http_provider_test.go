package facts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prefacturation_service/internal/domain/entities"
)

func collaborators(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/order-1/documents", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"proof_of_delivery":true,"signed_cmr":false}`))
	})
	mux.HandleFunc("/carriers/carrier-1/vigilance", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"documents":[{"type":"urssaf","expires_at":"2030-01-01T00:00:00Z"},{"type":"kbis"}]}`))
	})
	mux.HandleFunc("/carriers/carrier-1/balance", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("client_id") != "client-1" {
			http.Error(w, "client_id required", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"pallet_type":"EUR","balance":-3}`))
	})
	mux.HandleFunc("/orders/order-1/delivery", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"scheduled_at":"2026-03-09T08:00:00Z","actual_at":"2026-03-09T11:30:00Z"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func prefacturation() entities.Prefacturation {
	return entities.Prefacturation{ID: "pf-1", OrderID: "order-1", CarrierID: "carrier-1", ClientID: "client-1"}
}

func TestHTTPProvider_Fetch(t *testing.T) {
	srv := collaborators(t)

	t.Run("all facts", func(t *testing.T) {
		p := NewHTTPProvider(Endpoints{
			Documents: srv.URL,
			Vigilance: srv.URL,
			Pallets:   srv.URL,
			Orders:    srv.URL,
		}, time.Second, 0)

		facts, err := p.Fetch(context.Background(), prefacturation())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if facts.Documents == nil || !facts.Documents.ProofOfDelivery || facts.Documents.SignedCMR {
			t.Fatalf("unexpected documents: %+v", facts.Documents)
		}
		if facts.Vigilance == nil || facts.Vigilance.CarrierID != "carrier-1" || len(facts.Vigilance.Documents) != 2 {
			t.Fatalf("unexpected vigilance: %+v", facts.Vigilance)
		}
		if facts.Pallets == nil || facts.Pallets.Balance != -3 {
			t.Fatalf("unexpected pallets: %+v", facts.Pallets)
		}
		if facts.Delivery == nil || facts.Delivery.ActualAt.Sub(facts.Delivery.ScheduledAt) != 210*time.Minute {
			t.Fatalf("unexpected delivery: %+v", facts.Delivery)
		}
	})

	t.Run("unconfigured and unknown facts stay nil", func(t *testing.T) {
		p := NewHTTPProvider(Endpoints{Documents: srv.URL, Orders: srv.URL}, time.Second, 0)

		pf := prefacturation()
		pf.OrderID = "order-404"
		facts, err := p.Fetch(context.Background(), pf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if facts.Documents != nil || facts.Vigilance != nil || facts.Pallets != nil || facts.Delivery != nil {
			t.Fatalf("expected no facts, got %+v", facts)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		p := NewHTTPProvider(Endpoints{Documents: srv.URL}, time.Second, 0)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := p.Fetch(ctx, prefacturation()); err == nil {
			t.Fatalf("expected context error")
		}
	})
}

func TestBuildURL(t *testing.T) {
	got, err := buildURL("http://vigilance:8080/api/", "carriers", "carrier 1", "vigilance")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "http://vigilance:8080/api/carriers/carrier%201/vigilance" {
		t.Fatalf("unexpected url: %s", got)
	}
}
