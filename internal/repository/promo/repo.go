package promo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/atelier-cloud/catalog/internal/db"
	"github.com/atelier-cloud/catalog/internal/domain"
	domprom "github.com/atelier-cloud/catalog/internal/domain/promo"
)

// store is the consumer interface for promo persistence (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/promo.Repository over JSON documents keyed by code.
type Repo struct {
	store store
}

// New creates a promo repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// promoDoc is the stored JSON shape.
type promoDoc struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Type      string     `json:"type"`
	Value     float64    `json:"value"`
	MaxUses   int        `json:"max_uses"`
	Uses      int        `json:"uses"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func promoKey(code string) string {
	return domain.KeyPrefix + "promo:" + code
}

// Create persists a new promo code. Codes are unique.
func (r *Repo) Create(ctx context.Context, p *domprom.Promo) error {
	key := promoKey(p.Code())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if exists {
		return fmt.Errorf("%w: promo code %s", domain.ErrAlreadyExists, p.Code())
	}

	return r.put(ctx, key, p)
}

// Get returns a promo by code.
func (r *Repo) Get(ctx context.Context, code string) (domprom.Promo, error) {
	key := promoKey(code)

	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domprom.Promo{}, fmt.Errorf("%w: promo code %s", domain.ErrPromoNotFound, code)
		}
		return domprom.Promo{}, fmt.Errorf("json.get %s: %w", key, err)
	}

	return parseDoc(raw)
}

// Update overwrites the stored promo state (read-modify-write from usecase).
func (r *Repo) Update(ctx context.Context, p *domprom.Promo) error {
	key := promoKey(p.Code())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return fmt.Errorf("%w: promo code %s", domain.ErrPromoNotFound, p.Code())
	}

	return r.put(ctx, key, p)
}

// Delete removes a promo. Returns false without error when the code is unknown.
func (r *Repo) Delete(ctx context.Context, code string) (bool, error) {
	key := promoKey(code)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return false, nil
	}

	if err := r.store.Del(ctx, key); err != nil {
		return false, fmt.Errorf("del %s: %w", key, err)
	}
	return true, nil
}

// List returns all promos. The promo population is small (tens of codes),
// so SCAN plus per-key JSON.GET is fine here.
func (r *Repo) List(ctx context.Context) ([]domprom.Promo, error) {
	keys, err := r.store.Scan(ctx, domain.KeyPrefix+"promo:*")
	if err != nil {
		return nil, fmt.Errorf("scan promos: %w", err)
	}

	promos := make([]domprom.Promo, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue // deleted between SCAN and GET
			}
			return nil, fmt.Errorf("json.get %s: %w", key, err)
		}
		p, err := parseDoc(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}
		promos = append(promos, p)
	}

	return promos, nil
}

func (r *Repo) put(ctx context.Context, key string, p *domprom.Promo) error {
	doc := promoDoc{
		ID:        p.ID(),
		Code:      p.Code(),
		Type:      string(p.Type()),
		Value:     p.Value(),
		MaxUses:   p.MaxUses(),
		Uses:      p.Uses(),
		EndDate:   p.EndDate(),
		CreatedAt: p.CreatedAt(),
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal promo: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// parseDoc unwraps a JSONPath result ([doc] or doc) into a domain Promo.
func parseDoc(raw []byte) (domprom.Promo, error) {
	var docs []promoDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		var doc promoDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return domprom.Promo{}, fmt.Errorf("unmarshal promo: %w", err)
		}
		docs = []promoDoc{doc}
	}
	if len(docs) == 0 {
		return domprom.Promo{}, fmt.Errorf("%w: empty promo document", domain.ErrRetrieval)
	}

	d := docs[0]
	return domprom.Reconstruct(
		d.ID, d.Code, domprom.Type(d.Type), d.Value,
		d.MaxUses, d.Uses, d.EndDate, d.CreatedAt,
	), nil
}
