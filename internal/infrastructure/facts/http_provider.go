package facts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/usecase/interfaces"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// errNotFound marks a collaborator answering 404: the fact does not exist yet.
var errNotFound = errors.New("fact not found")

// Endpoints are the base URLs of the collaborators. An empty URL leaves the
// corresponding fact missing.
type Endpoints struct {
	Documents string
	Vigilance string
	Pallets   string
	Orders    string
}

// HTTPProvider gathers block facts from the documents, vigilance, pallet
// ledger and orders services in parallel.
//
//	GET {documents}/orders/{orderID}/documents
//	GET {vigilance}/carriers/{carrierID}/vigilance
//	GET {pallets}/carriers/{carrierID}/balance?client_id={clientID}
//	GET {orders}/orders/{orderID}/delivery
//
// A collaborator that fails or answers 404 leaves its fact nil; the block
// evaluator turns that into a missing-facts error.
type HTTPProvider struct {
	client    *http.Client
	endpoints Endpoints
	limiter   *rate.Limiter
}

var _ interfaces.IFactsProvider = (*HTTPProvider)(nil)

// NewHTTPProvider builds a provider with a per-request timeout and an
// outbound rate limit shared by all collaborators (requests per second).
func NewHTTPProvider(endpoints Endpoints, timeout time.Duration, ratePerSecond float64) *HTTPProvider {
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	return &HTTPProvider{
		client:    &http.Client{Timeout: timeout},
		endpoints: endpoints,
		limiter:   rate.NewLimiter(limit, 10),
	}
}

func (p *HTTPProvider) Fetch(ctx context.Context, pf entities.Prefacturation) (entities.BlockFacts, error) {
	var facts entities.BlockFacts
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var v entities.DocumentChecklist
		ok, err := p.fetch(ctx, p.endpoints.Documents, "documents", &v, "orders", pf.OrderID, "documents")
		if ok {
			facts.Documents = &v
		}
		return err
	})
	g.Go(func() error {
		var v entities.VigilanceRecord
		ok, err := p.fetch(ctx, p.endpoints.Vigilance, "vigilance", &v, "carriers", pf.CarrierID, "vigilance")
		if ok {
			if v.CarrierID == "" {
				v.CarrierID = pf.CarrierID
			}
			facts.Vigilance = &v
		}
		return err
	})
	g.Go(func() error {
		var v entities.PalletBalance
		base := p.endpoints.Pallets
		if base != "" {
			base = withQuery(base, "client_id", pf.ClientID)
		}
		ok, err := p.fetch(ctx, base, "pallets", &v, "carriers", pf.CarrierID, "balance")
		if ok {
			facts.Pallets = &v
		}
		return err
	})
	g.Go(func() error {
		var v entities.DeliveryTimestamps
		ok, err := p.fetch(ctx, p.endpoints.Orders, "delivery", &v, "orders", pf.OrderID, "delivery")
		if ok {
			facts.Delivery = &v
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return entities.BlockFacts{}, err
	}
	return facts, nil
}

// fetch decodes one collaborator answer into out. It reports whether the
// fact was obtained; the error is only set when the caller's context ends.
func (p *HTTPProvider) fetch(ctx context.Context, base, fact string, out any, segments ...string) (bool, error) {
	if base == "" {
		return false, nil
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return false, ctx.Err()
	}

	target, err := buildURL(base, segments...)
	if err != nil {
		log.Printf("[facts][http] bad url fact=%s base=%s err=%v", fact, base, err)
		return false, nil
	}
	err = p.getJSON(ctx, target, out)
	switch {
	case err == nil:
		return true, nil
	case ctx.Err() != nil:
		return false, ctx.Err()
	case errors.Is(err, errNotFound):
		log.Printf("[facts][http] missing fact=%s url=%s", fact, target)
	default:
		log.Printf("[facts][http] fetch failed fact=%s url=%s err=%v", fact, target, err)
	}
	return false, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func buildURL(base string, segments ...string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	rawBase := strings.TrimRight(u.EscapedPath(), "/")
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Join(segments, "/")
	u.RawPath = rawBase + "/" + strings.Join(escaped, "/")
	return u.String(), nil
}

func withQuery(base, key, value string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
