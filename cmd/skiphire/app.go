package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/skiphire/internal/catalog"
	"github.com/hammamikhairi/skiphire/internal/display"
	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/logger"
	"github.com/hammamikhairi/skiphire/internal/pricing"
	"github.com/hammamikhairi/skiphire/internal/ranking"
	"github.com/hammamikhairi/skiphire/internal/wizard"
)

type cliApp struct {
	wiz       *wizard.Wizard
	parser    domain.CommandParser
	notifier  domain.Notifier
	providers domain.ProviderCatalog
	tables    domain.PriceTables
	log       *logger.Logger
	ui        *display.UI
	steps     <-chan domain.Step // timed step changes from the wizard

	sortMode domain.SortMode
	cards    []domain.ProviderQuote // last list shown, for numeric picks
}

func (a *cliApp) run(ctx context.Context) {
	a.ui.PrintChat(lineWelcome())
	a.ui.Println("")
	a.showStep(ctx, a.wiz.Step())

	uiCh := a.ui.InputChan()
	for {
		select {
		case <-ctx.Done():
			return
		case step := <-a.steps:
			a.onTimedStep(ctx, step)
		case input, ok := <-uiCh:
			if !ok {
				return
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}

			cmd, err := a.parser.Parse(ctx, input, a.wiz.Step())
			if err != nil {
				a.log.Error("parsing input: %v", err)
				continue
			}
			a.log.Debug("command: %s (payload=%q amount=%d)", cmd.Type, cmd.Payload, cmd.Amount)
			if !a.handleCommand(ctx, cmd) {
				return
			}
		}
	}
}

// handleCommand applies one command. It returns false when the user quits.
func (a *cliApp) handleCommand(ctx context.Context, cmd *domain.Command) bool {
	store := a.wiz.Store()
	step := a.wiz.Step()

	switch cmd.Type {
	case domain.CmdQuit:
		a.ui.PrintChat(lineBye())
		return false
	case domain.CmdHelp:
		a.showHelp()
	case domain.CmdNext:
		a.advance(ctx)
	case domain.CmdBack:
		a.back(ctx)
	case domain.CmdSummary:
		a.showSummary(ctx)
	case domain.CmdReset:
		a.wiz.BookAnother()
		a.cards = nil
		a.ui.PrintChat(lineReset())
		a.showStep(ctx, a.wiz.Step())

	case domain.CmdPostcode:
		if !wizard.ValidPostcode(cmd.Payload) {
			a.ui.PrintUrgent(lineInvalid("UK postcode", cmd.Payload))
			return true
		}
		pc := wizard.NormalizePostcode(cmd.Payload)
		store.SetPostcode(pc)
		a.ui.PrintHint(lineSet("Postcode", pc))
	case domain.CmdAddress:
		store.SetAddress(cmd.Payload)
		a.ui.PrintHint(lineSet("Address", cmd.Payload))
	case domain.CmdPlacement:
		a.setPlacement(cmd.Payload)
	case domain.CmdWaste:
		w, ok := domain.ParseWasteType(cmd.Payload)
		if !ok {
			a.ui.PrintUrgent(lineInvalid("waste type", cmd.Payload))
			return true
		}
		store.SetWasteType(w)
		a.ui.PrintHint(lineSet("Waste", string(w)))
	case domain.CmdSize:
		a.setSize(cmd.Payload)

	case domain.CmdItem:
		a.toggleItem(cmd.Payload)
	case domain.CmdQuantity:
		label, ok := catalog.ItemLabel(a.tables, cmd.Payload)
		if !ok {
			a.ui.PrintUrgent(lineInvalid("item", cmd.Payload))
			return true
		}
		if !store.Snapshot().HasItem(label) {
			store.ToggleItem(label)
		}
		qty := a.wiz.AdjustQuantity(label, cmd.Amount)
		a.ui.PrintHint(lineQuantity(label, qty))
		a.ui.PrintHint(lineTotal(a.wiz.CurrentTotals()))
	case domain.CmdClearItems:
		store.SetItems(nil)
		a.ui.PrintHint(lineItemsCleared())

	case domain.CmdDeliver, domain.CmdCollect:
		a.setDate(cmd)

	case domain.CmdSort:
		a.sortMode = domain.ParseSortMode(strings.ToLower(cmd.Payload))
		a.ui.PrintHint(lineSortMode(a.sortMode))
		if step == domain.StepProviders {
			a.showProviders(ctx)
		}
	case domain.CmdPick:
		a.pickProvider(ctx, cmd.Payload)
	case domain.CmdCompare:
		a.toggleCompare(ctx, cmd.Payload)

	case domain.CmdName, domain.CmdEmail, domain.CmdPhone:
		a.setCustomer(cmd)

	case domain.CmdSelect:
		a.selectByNumber(ctx, step, cmd)

	default:
		a.ui.PrintChat(lineUnknown(cmd.Payload))
	}
	return true
}

func (a *cliApp) advance(ctx context.Context) {
	step, err := a.wiz.Advance(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStepIncomplete) {
			a.ui.PrintUrgent(strings.TrimPrefix(err.Error(), domain.ErrStepIncomplete.Error()+": "))
			return
		}
		if step == domain.StepReview {
			a.ui.PrintUrgent(lineSubmitFailed(err))
			return
		}
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.showStep(ctx, step)
}

func (a *cliApp) back(ctx context.Context) {
	step, err := a.wiz.Back()
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.showStep(ctx, step)
}

// onTimedStep handles steps the wizard reached on its own.
func (a *cliApp) onTimedStep(ctx context.Context, step domain.Step) {
	if step != a.wiz.Step() {
		return // superseded
	}
	a.showStep(ctx, step)
	if step == domain.StepConfirmed {
		if conf := a.wiz.Confirmation(); conf != nil {
			_ = a.notifier.Notify(ctx, lineConfirmed(conf.Reference))
		}
	}
}

func (a *cliApp) setPlacement(raw string) {
	p, ok := domain.ParsePlacement(raw)
	if !ok || p == domain.PlacementUnset {
		a.ui.PrintUrgent(lineInvalid("placement", raw))
		return
	}
	a.wiz.Store().SetPlacement(p)
	a.ui.PrintHint(lineSet("Placement", p.String()))
	if p == domain.PlacementRoad {
		a.ui.PrintHint(lineSet("Road permit", pricing.FormatGBP(pricing.CalculatePermit(p))))
	}
}

func (a *cliApp) setSize(raw string) {
	size, ok := domain.ParseSize(raw)
	if !ok {
		a.ui.PrintUrgent(lineInvalid("size", raw))
		return
	}
	a.wiz.Store().SetSize(size)
	a.ui.PrintHint(lineSet("Size", string(size)))
	a.ui.PrintHint(lineTotal(a.wiz.CurrentTotals()))
}

func (a *cliApp) toggleItem(raw string) {
	label, ok := catalog.ItemLabel(a.tables, raw)
	if !ok {
		a.ui.PrintUrgent(lineInvalid("item", raw))
		return
	}
	store := a.wiz.Store()
	store.ToggleItem(label)
	s := store.Snapshot()
	a.ui.PrintHint(lineItemToggled(label, s.HasItem(label), pricing.Quantity(s.ItemQuantities, label)))
	a.ui.PrintHint(lineTotal(s.Totals))
}

func (a *cliApp) setDate(cmd *domain.Command) {
	spec, ok := domain.ParseDateSpec(cmd.Payload)
	if !ok || spec.IsZero() {
		a.ui.PrintUrgent(lineInvalid("date", cmd.Payload))
		return
	}
	if cmd.Type == domain.CmdDeliver {
		a.wiz.Store().SetDeliveryDate(spec)
		a.ui.PrintHint(lineSet("Delivery", describeDate(spec)))
		return
	}
	a.wiz.Store().SetCollectionDate(spec)
	a.ui.PrintHint(lineSet("Collection", describeDate(spec)))
}

func (a *cliApp) setCustomer(cmd *domain.Command) {
	store := a.wiz.Store()
	c := store.Snapshot().Customer
	switch cmd.Type {
	case domain.CmdName:
		c.Name = cmd.Payload
		a.ui.PrintHint(lineSet("Name", c.Name))
	case domain.CmdEmail:
		if !wizard.ValidEmail(cmd.Payload) {
			a.ui.PrintUrgent(lineInvalid("email address", cmd.Payload))
			return
		}
		c.Email = cmd.Payload
		a.ui.PrintHint(lineSet("Email", c.Email))
	case domain.CmdPhone:
		if !wizard.ValidPhone(cmd.Payload) {
			a.ui.PrintUrgent(lineInvalid("phone number", cmd.Payload))
			return
		}
		c.Phone = cmd.Payload
		a.ui.PrintHint(lineSet("Phone", c.Phone))
	}
	store.SetCustomer(c)
}

// resolveProvider accepts a list position from the last card list or a
// provider id.
func (a *cliApp) resolveProvider(ctx context.Context, raw string) (*domain.Provider, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		if n < 1 || n > len(a.cards) {
			return nil, fmt.Errorf("%w: no provider number %d", domain.ErrNotFound, n)
		}
		return a.cards[n-1].Provider, nil
	}
	p, err := a.providers.Get(ctx, strings.ToLower(strings.TrimSpace(raw)))
	if err == nil {
		return p, nil
	}
	matches, serr := a.providers.Search(ctx, raw)
	if serr == nil && len(matches) == 1 {
		return matches[0], nil
	}
	return nil, err
}

func (a *cliApp) pickProvider(ctx context.Context, raw string) {
	p, err := a.resolveProvider(ctx, raw)
	if err != nil {
		a.ui.PrintUrgent(lineInvalid("provider", raw))
		return
	}
	if err := a.wiz.SelectProvider(ctx, p.ID); err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.ui.PrintChat(lineProviderPicked(p.Name))
}

func (a *cliApp) toggleCompare(ctx context.Context, raw string) {
	p, err := a.resolveProvider(ctx, raw)
	if err != nil {
		a.ui.PrintUrgent(lineInvalid("provider", raw))
		return
	}
	store := a.wiz.Store()
	before := store.Snapshot().CompareList
	store.ToggleCompare(p.ID)
	after := store.Snapshot().CompareList

	switch {
	case len(after) > len(before):
		a.ui.PrintHint(lineCompareToggled(p.Name, true, len(after)))
	case len(after) < len(before):
		a.ui.PrintHint(lineCompareToggled(p.Name, false, len(after)))
	default:
		a.ui.PrintUrgent(lineCompareFull())
		return
	}
	a.showCompare(ctx, after)
}

// selectByNumber maps a bare number onto the current step's choices.
func (a *cliApp) selectByNumber(ctx context.Context, step domain.Step, cmd *domain.Command) {
	n := cmd.Amount
	switch step {
	case domain.StepPlacement:
		switch n {
		case 1:
			a.setPlacement(string(domain.PlacementProperty))
		case 2:
			a.setPlacement(string(domain.PlacementRoad))
		default:
			a.ui.PrintUrgent(lineInvalid("choice", cmd.Payload))
		}
	case domain.StepWaste:
		if n < 1 || n > len(domain.WasteTypes) {
			a.ui.PrintUrgent(lineInvalid("choice", cmd.Payload))
			return
		}
		w := domain.WasteTypes[n-1]
		a.wiz.Store().SetWasteType(w)
		a.ui.PrintHint(lineSet("Waste", string(w)))
	case domain.StepItems:
		if n < 1 || n > len(a.tables.ItemOrder) {
			a.ui.PrintUrgent(lineInvalid("choice", cmd.Payload))
			return
		}
		a.toggleItem(a.tables.ItemOrder[n-1])
	default:
		a.ui.PrintChat(lineUnknown(cmd.Payload))
	}
}

// ── Screens ──────────────────────────────────────────────────────

func (a *cliApp) showStep(ctx context.Context, step domain.Step) {
	a.ui.Println("")
	a.ui.PrintStep(lineStepHeader(step))

	switch step {
	case domain.StepWaste:
		for i, w := range domain.WasteTypes {
			a.ui.PrintInstruction(fmt.Sprintf("[%d] %s", i+1, w))
		}
	case domain.StepSize:
		for _, sz := range domain.Sizes {
			a.ui.PrintPriceLine(string(sz), a.tables.BasePrices[sz])
		}
	case domain.StepItems:
		for i, label := range a.tables.ItemOrder {
			a.ui.PrintPriceLine(fmt.Sprintf("[%d] %s", i+1, label), a.tables.ItemPrices[label])
		}
	case domain.StepProviders:
		a.showProviders(ctx)
	case domain.StepReview:
		a.showSummary(ctx)
	}

	if hint := lineStepHint(step); hint != "" {
		a.ui.PrintHint(hint)
	}
}

func (a *cliApp) showProviders(ctx context.Context) {
	cards, err := a.wiz.ProviderCards(ctx, a.sortMode)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.cards = cards
	chosen := a.wiz.Store().Snapshot().ProviderID

	for i, q := range cards {
		p := q.Provider
		marker := " "
		if p.ID == chosen {
			marker = "*"
		}
		a.ui.PrintInstruction(fmt.Sprintf("%s[%d] %-16s %s  ★%.1f (%d)  %s %s",
			marker, i+1, p.Name, pricing.FormatGBP(q.Total), p.Rating, p.ReviewCount, p.EarliestDay, p.EarliestTime))
		detail := fmt.Sprintf("     %.0f%% recycled · %.1f mi · %d days included", p.RecyclingPct, p.DistanceMiles, p.StandardHireDays)
		if q.ExtraDays > 0 {
			detail += fmt.Sprintf(" · +%d days %s", q.ExtraDays, pricing.FormatGBP(q.ExtraDaysCost))
		}
		a.ui.PrintHint(detail)
	}
	a.ui.PrintHint(lineSortMode(a.sortMode))
}

func (a *cliApp) showCompare(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	s := a.wiz.Store().Snapshot()
	var picked []*domain.Provider
	for _, id := range ids {
		if p, err := a.providers.Get(ctx, id); err == nil {
			picked = append(picked, p)
		}
	}
	for _, q := range ranking.Quotes(picked, domain.SortCheapest, s) {
		p := q.Provider
		a.ui.PrintInstruction(fmt.Sprintf("  %-16s %s  ★%.1f  %.0f%% recycled  on time %.0f%%  from %s",
			p.Name, pricing.FormatGBP(q.Total), p.Rating, p.RecyclingPct, p.OnTimePct, p.EarliestDay))
	}
}

func (a *cliApp) showSummary(ctx context.Context) {
	s := a.wiz.Store().Snapshot()
	a.ui.PrintInstruction(lineSet("Postcode", orDash(s.Location.Postcode)))
	if s.Location.WordCode != "" {
		a.ui.PrintHint(lineSet("Location code", s.Location.WordCode))
	}
	a.ui.PrintInstruction(lineSet("Placement", s.Placement.String()))
	a.ui.PrintInstruction(lineSet("Waste", orDash(string(s.WasteType))))
	a.ui.PrintInstruction(lineSet("Size", orDash(string(s.Size))))

	items := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, fmt.Sprintf("%s x%d", it, pricing.Quantity(s.ItemQuantities, it)))
	}
	a.ui.PrintInstruction(lineSet("Items", joinOrNone(items)))
	a.ui.PrintInstruction(lineSet("Delivery", describeDate(s.DeliveryDate)))
	a.ui.PrintInstruction(lineSet("Collection", describeDate(s.CollectionDate)))
	if s.ProviderID != "" {
		if p, err := a.providers.Get(ctx, s.ProviderID); err == nil {
			a.ui.PrintInstruction(lineSet("Provider", p.Name))
		}
	}
	if s.Customer.Name != "" {
		a.ui.PrintInstruction(lineSet("Contact", fmt.Sprintf("%s, %s, %s", s.Customer.Name, s.Customer.Email, s.Customer.Phone)))
	}

	t := s.Totals
	a.ui.PrintPriceLine("Skip hire", t.Base)
	a.ui.PrintPriceLine("Extra items", t.Extras)
	if t.Permit > 0 {
		a.ui.PrintPriceLine("Road permit", t.Permit)
	}
	a.ui.PrintPriceLine("VAT", t.VAT)
	a.ui.PrintPriceLine("Total", t.Total)
}

func (a *cliApp) showHelp() {
	a.ui.PrintStep("Commands")
	for _, l := range helpLines() {
		a.ui.PrintInstruction(l)
	}
}

func describeDate(d domain.DateSpec) string {
	if d.IsZero() {
		return "-"
	}
	start, end, ok := d.Bounds()
	if !ok {
		return string(d)
	}
	if d.IsRange() {
		return start.Format("Mon 2 Jan") + " to " + end.Format("Mon 2 Jan")
	}
	return start.Format("Mon 2 Jan 2006")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
