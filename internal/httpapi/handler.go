// Package httpapi exposes quotes, provider ranking and stored journeys over
// JSON.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hammamikhairi/skiphire/internal/catalog"
	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/pricing"
	"github.com/hammamikhairi/skiphire/internal/ranking"
	"github.com/hammamikhairi/skiphire/internal/storage"
	"github.com/hammamikhairi/skiphire/internal/wizard"
)

// JourneyRegistry stores journeys between requests.
type JourneyRegistry interface {
	Create(ctx context.Context) (*storage.Entry, error)
	Load(ctx context.Context, id string) (*storage.Entry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*storage.Entry, error)
}

type Handler struct {
	prices    *pricing.Engine
	catalog   domain.ProviderCatalog
	journeys  JourneyRegistry
	submitter domain.Submitter
	log       zerolog.Logger
}

func NewHandler(prices *pricing.Engine, providers domain.ProviderCatalog, journeys JourneyRegistry, submitter domain.Submitter, log zerolog.Logger) *Handler {
	return &Handler{
		prices:    prices,
		catalog:   providers,
		journeys:  journeys,
		submitter: submitter,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/healthz", h.health)

	api := router.Group("/api/v1")
	api.GET("/catalog", h.getCatalog)
	api.GET("/quote", h.getQuote)
	api.GET("/providers", h.getProviders)

	journeys := api.Group("/journeys")
	journeys.POST("", h.createJourney)
	journeys.GET("", h.listJourneys)
	journeys.GET("/:id", h.getJourney)
	journeys.PATCH("/:id", h.patchJourney)
	journeys.DELETE("/:id", h.deleteJourney)
	journeys.POST("/:id/items/toggle", h.toggleItem)
	journeys.POST("/:id/items/quantity", h.setQuantity)
	journeys.POST("/:id/compare/toggle", h.toggleCompare)
	journeys.POST("/:id/reset", h.resetJourney)
	journeys.POST("/:id/submit", h.submitJourney)
}

// ── responses ────────────────────────────────────────────────────

type totalsResponse struct {
	domain.Totals
	Formatted string `json:"formatted_total"`
}

func newTotalsResponse(t domain.Totals) totalsResponse {
	return totalsResponse{
		Totals:    pricing.RoundTotals(t),
		Formatted: pricing.FormatGBP(t.Total),
	}
}

type sizeEntry struct {
	Size      domain.Size `json:"size"`
	BasePrice float64     `json:"base_price"`
}

type itemEntry struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

type catalogResponse struct {
	Sizes         []sizeEntry        `json:"sizes"`
	WasteTypes    []domain.WasteType `json:"waste_types"`
	Items         []itemEntry        `json:"items"`
	Providers     []*domain.Provider `json:"providers"`
	VATRate       float64            `json:"vat_rate"`
	RoadPermitFee float64            `json:"road_permit_fee"`
}

type cardResponse struct {
	Rank  int     `json:"rank"`
	Score float64 `json:"score"`
	domain.ProviderQuote
	Formatted string `json:"formatted_total"`
}

type journeyResponse struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	State     domain.JourneyState `json:"state"`
	Totals    totalsResponse      `json:"totals"`
}

func newJourneyResponse(e *storage.Entry) journeyResponse {
	s := e.Store.Snapshot()
	return journeyResponse{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		State:     s,
		Totals:    newTotalsResponse(s.Totals),
	}
}

// ── catalog and pricing ──────────────────────────────────────────

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) getCatalog(c *gin.Context) {
	providers, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	tables := h.prices.Tables()
	resp := catalogResponse{
		WasteTypes:    domain.WasteTypes,
		Providers:     providers,
		VATRate:       pricing.VATRate,
		RoadPermitFee: pricing.RoadPermitFee,
	}
	for _, sz := range domain.Sizes {
		resp.Sizes = append(resp.Sizes, sizeEntry{Size: sz, BasePrice: tables.BasePrices[sz]})
	}
	for _, label := range tables.ItemOrder {
		resp.Items = append(resp.Items, itemEntry{Label: label, Price: tables.ItemPrices[label]})
	}
	c.JSON(http.StatusOK, resp)
}

// selection is the size/items/placement triple most queries carry.
type selection struct {
	size       domain.Size
	items      []string
	placement  domain.Placement
	quantities map[string]int
}

func (h *Handler) parseSelection(c *gin.Context) (selection, error) {
	sel := selection{quantities: map[string]int{}}

	if raw := strings.TrimSpace(c.Query("size")); raw != "" {
		size, ok := domain.ParseSize(raw)
		if !ok {
			return sel, fmt.Errorf("%w: unknown size %q", domain.ErrInvalidInput, raw)
		}
		sel.size = size
	}

	placement, ok := domain.ParsePlacement(c.Query("placement"))
	if !ok {
		return sel, fmt.Errorf("%w: unknown placement %q", domain.ErrInvalidInput, c.Query("placement"))
	}
	sel.placement = placement

	seen := map[string]bool{}
	for _, raw := range strings.Split(c.Query("items"), ",") {
		label := h.itemLabel(raw)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		sel.items = append(sel.items, label)
	}

	for raw, qty := range c.QueryMap("qty") {
		n, err := strconv.Atoi(qty)
		if err != nil || n < 1 {
			return sel, fmt.Errorf("%w: quantity for %q must be a positive integer", domain.ErrInvalidInput, raw)
		}
		sel.quantities[h.itemLabel(raw)] = n
	}
	return sel, nil
}

// itemLabel canonicalises known items and passes unknown labels through;
// pricing treats those as free.
func (h *Handler) itemLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if label, ok := catalog.ItemLabel(h.prices.Tables(), raw); ok {
		return label
	}
	return raw
}

func (h *Handler) getQuote(c *gin.Context) {
	sel, err := h.parseSelection(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	totals := h.prices.CalculateTotals(sel.size, sel.items, sel.placement, sel.quantities)
	c.JSON(http.StatusOK, gin.H{
		"size":      sel.size,
		"items":     nonNil(sel.items),
		"placement": sel.placement,
		"totals":    newTotalsResponse(totals),
	})
}

func (h *Handler) getProviders(c *gin.Context) {
	sel, err := h.parseSelection(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	delivery, ok := domain.ParseDateSpec(c.Query("delivery"))
	if !ok {
		h.handleError(c, fmt.Errorf("%w: invalid delivery date", domain.ErrInvalidInput))
		return
	}
	collection, ok := domain.ParseDateSpec(c.Query("collection"))
	if !ok {
		h.handleError(c, fmt.Errorf("%w: invalid collection date", domain.ErrInvalidInput))
		return
	}
	mode := domain.ParseSortMode(c.Query("sort"))

	providers, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	state := domain.DefaultJourneyState()
	state.Size = sel.size
	state.Items = nonNil(sel.items)
	state.Placement = sel.placement
	state.DeliveryDate = delivery
	state.CollectionDate = collection

	c.JSON(http.StatusOK, gin.H{
		"sort":  mode,
		"cards": h.cards(providers, mode, state),
	})
}

func (h *Handler) cards(providers []*domain.Provider, mode domain.SortMode, s domain.JourneyState) []cardResponse {
	quotes := ranking.Quotes(providers, mode, s)
	out := make([]cardResponse, 0, len(quotes))
	for i, q := range quotes {
		out = append(out, cardResponse{
			Rank:          i + 1,
			Score:         pricing.RoundPence(ranking.Score(q.Provider, s.Size, s.Items, s.Placement)),
			ProviderQuote: roundQuote(q),
			Formatted:     pricing.FormatGBP(q.Total),
		})
	}
	return out
}

func roundQuote(q domain.ProviderQuote) domain.ProviderQuote {
	q.Base = pricing.RoundPence(q.Base)
	q.Extras = pricing.RoundPence(q.Extras)
	q.Permit = pricing.RoundPence(q.Permit)
	q.ExtraDaysCost = pricing.RoundPence(q.ExtraDaysCost)
	q.Subtotal = pricing.RoundPence(q.Subtotal)
	q.VAT = pricing.RoundPence(q.VAT)
	q.Total = pricing.RoundPence(q.Total)
	return q
}

// ── journeys ─────────────────────────────────────────────────────

func (h *Handler) createJourney(c *gin.Context) {
	e, err := h.journeys.Create(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newJourneyResponse(e))
}

func (h *Handler) listJourneys(c *gin.Context) {
	entries, err := h.journeys.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]journeyResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, newJourneyResponse(e))
	}
	c.JSON(http.StatusOK, gin.H{"journeys": out})
}

func (h *Handler) loadJourney(c *gin.Context) (*storage.Entry, bool) {
	e, err := h.journeys.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return nil, false
	}
	return e, true
}

func (h *Handler) getJourney(c *gin.Context) {
	e, ok := h.loadJourney(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newJourneyResponse(e))
}

func (h *Handler) deleteJourney(c *gin.Context) {
	if err := h.journeys.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type patchJourneyRequest struct {
	Postcode       *string          `json:"postcode"`
	Address        *string          `json:"address"`
	Lat            *float64         `json:"lat"`
	Lng            *float64         `json:"lng"`
	Placement      *string          `json:"placement"`
	WasteType      *string          `json:"waste_type"`
	Size           *string          `json:"size"`
	DeliveryDate   *string          `json:"delivery_date"`
	CollectionDate *string          `json:"collection_date"`
	ProviderID     *string          `json:"provider_id"`
	Customer       *domain.Customer `json:"customer"`
}

// patchJourney validates every supplied field before writing any of them.
func (h *Handler) patchJourney(c *gin.Context) {
	e, ok := h.loadJourney(c)
	if !ok {
		return
	}

	var req patchJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	writes, err := h.planPatch(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	for _, write := range writes {
		write(e)
	}
	c.JSON(http.StatusOK, newJourneyResponse(e))
}

func (h *Handler) planPatch(ctx context.Context, req patchJourneyRequest) ([]func(*storage.Entry), error) {
	var writes []func(*storage.Entry)
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
	}

	if req.Postcode != nil {
		pc := wizard.NormalizePostcode(*req.Postcode)
		if pc != "" && !wizard.ValidPostcode(pc) {
			return nil, invalid("invalid postcode %q", *req.Postcode)
		}
		writes = append(writes, func(e *storage.Entry) { e.Store.SetPostcode(pc) })
	}
	if req.Address != nil {
		addr := strings.TrimSpace(*req.Address)
		writes = append(writes, func(e *storage.Entry) { e.Store.SetAddress(addr) })
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		return nil, invalid("lat and lng must be set together")
	}
	if req.Lat != nil {
		lat, lng := *req.Lat, *req.Lng
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return nil, invalid("coordinate out of range")
		}
		writes = append(writes, func(e *storage.Entry) { e.Store.SetLocation(lat, lng, wizard.WordCode(lat, lng)) })
	}
	if req.Placement != nil {
		p, ok := domain.ParsePlacement(*req.Placement)
		if !ok {
			return nil, invalid("unknown placement %q", *req.Placement)
		}
		writes = append(writes, func(e *storage.Entry) { e.Store.SetPlacement(p) })
	}
	if req.WasteType != nil {
		var w domain.WasteType
		if raw := strings.TrimSpace(*req.WasteType); raw != "" {
			parsed, ok := domain.ParseWasteType(raw)
			if !ok {
				return nil, invalid("unknown waste type %q", raw)
			}
			w = parsed
		}
		writes = append(writes, func(e *storage.Entry) { e.Store.SetWasteType(w) })
	}
	if req.Size != nil {
		var size domain.Size
		if raw := strings.TrimSpace(*req.Size); raw != "" {
			parsed, ok := domain.ParseSize(raw)
			if !ok {
				return nil, invalid("unknown size %q", raw)
			}
			size = parsed
		}
		writes = append(writes, func(e *storage.Entry) { e.Store.SetSize(size) })
	}
	if req.DeliveryDate != nil {
		d, ok := domain.ParseDateSpec(*req.DeliveryDate)
		if !ok {
			return nil, invalid("invalid delivery date %q", *req.DeliveryDate)
		}
		writes = append(writes, func(e *storage.Entry) { e.Store.SetDeliveryDate(d) })
	}
	if req.CollectionDate != nil {
		d, ok := domain.ParseDateSpec(*req.CollectionDate)
		if !ok {
			return nil, invalid("invalid collection date %q", *req.CollectionDate)
		}
		writes = append(writes, func(e *storage.Entry) { e.Store.SetCollectionDate(d) })
	}
	if req.ProviderID != nil {
		id := strings.TrimSpace(*req.ProviderID)
		if id != "" {
			if _, err := h.catalog.Get(ctx, id); err != nil {
				return nil, invalid("unknown provider %q", id)
			}
		}
		writes = append(writes, func(e *storage.Entry) { e.Store.SetProviderID(id) })
	}
	if req.Customer != nil {
		cust := domain.Customer{
			Name:  strings.TrimSpace(req.Customer.Name),
			Email: strings.TrimSpace(req.Customer.Email),
			Phone: strings.TrimSpace(req.Customer.Phone),
		}
		if cust.Email != "" && !wizard.ValidEmail(cust.Email) {
			return nil, invalid("invalid email %q", cust.Email)
		}
		if cust.Phone != "" && !wizard.ValidPhone(cust.Phone) {
			return nil, invalid("invalid phone %q", cust.Phone)
		}
		writes = append(writes, func(e *storage.Entry) { e.Store.SetCustomer(cust) })
	}
	return writes, nil
}

type itemRequest struct {
	Item string `json:"item" binding:"required"`
}

func (h *Handler) toggleItem(c *gin.Context) {
	e, ok := h.loadJourney(c)
	if !ok {
		return
	}
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	label, known := catalog.ItemLabel(h.prices.Tables(), req.Item)
	if !known {
		h.handleError(c, fmt.Errorf("%w: unknown item %q", domain.ErrInvalidInput, req.Item))
		return
	}
	e.Store.ToggleItem(label)
	c.JSON(http.StatusOK, newJourneyResponse(e))
}

type quantityRequest struct {
	Item     string `json:"item" binding:"required"`
	Quantity *int   `json:"quantity"`
	Delta    *int   `json:"delta"`
}

// setQuantity sets or adjusts an item quantity, clamping at 1.
func (h *Handler) setQuantity(c *gin.Context) {
	e, ok := h.loadJourney(c)
	if !ok {
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	label, known := catalog.ItemLabel(h.prices.Tables(), req.Item)
	if !known {
		h.handleError(c, fmt.Errorf("%w: unknown item %q", domain.ErrInvalidInput, req.Item))
		return
	}

	var qty int
	switch {
	case req.Quantity != nil:
		qty = *req.Quantity
	case req.Delta != nil:
		qty = pricing.Quantity(e.Store.Snapshot().ItemQuantities, label) + *req.Delta
	default:
		h.handleError(c, fmt.Errorf("%w: quantity or delta is required", domain.ErrInvalidInput))
		return
	}
	if qty < 1 {
		qty = 1
	}
	e.Store.SetItemQuantity(label, qty)
	c.JSON(http.StatusOK, newJourneyResponse(e))
}

type compareRequest struct {
	ProviderID string `json:"provider_id" binding:"required"`
}

func (h *Handler) toggleCompare(c *gin.Context) {
	e, ok := h.loadJourney(c)
	if !ok {
		return
	}
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.catalog.Get(c.Request.Context(), req.ProviderID); err != nil {
		h.handleError(c, fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, req.ProviderID))
		return
	}
	e.Store.ToggleCompare(req.ProviderID)
	c.JSON(http.StatusOK, newJourneyResponse(e))
}

func (h *Handler) resetJourney(c *gin.Context) {
	e, ok := h.loadJourney(c)
	if !ok {
		return
	}
	e.Store.Reset()
	c.JSON(http.StatusOK, newJourneyResponse(e))
}

func (h *Handler) submitJourney(c *gin.Context) {
	e, ok := h.loadJourney(c)
	if !ok {
		return
	}
	conf, err := h.submitter.Submit(c.Request.Context(), e.Store.Submission())
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.log.Info().Str("journey", e.ID).Str("reference", conf.Reference).Msg("journey submitted")
	c.JSON(http.StatusCreated, gin.H{
		"reference":  conf.Reference,
		"submission": conf.Submission,
		"totals":     newTotalsResponse(conf.Submission.Totals),
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrStepIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrJourneyClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
