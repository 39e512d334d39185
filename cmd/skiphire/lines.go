package main

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/pricing"
)

// Every user-facing sentence lives here. Keep lines short.

// ── Greeting / Global ────────────────────────────────────────────

func lineWelcome() string {
	return "Let's get you a skip. Where is it going?"
}

func lineBye() string {
	return "Bye."
}

func lineUnknown(input string) string {
	if input == "" {
		return "Sorry, I didn't catch that. Type 'help' for commands."
	}
	return fmt.Sprintf("Not sure what %q means here. Type 'help' for commands.", input)
}

func lineNotHere(what string, step domain.Step) string {
	return fmt.Sprintf("You can't set %s on the %s step.", what, step)
}

// ── Step prompts ─────────────────────────────────────────────────

func lineStepHeader(step domain.Step) string {
	return fmt.Sprintf("Step %d/%d · %s", int(step)+1, len(domain.Steps), stepTitle(step))
}

func stepTitle(step domain.Step) string {
	switch step {
	case domain.StepPostcode:
		return "Your postcode"
	case domain.StepPlacement:
		return "Where will the skip go?"
	case domain.StepWaste:
		return "What are you throwing away?"
	case domain.StepSize:
		return "Choose a size"
	case domain.StepItems:
		return "Any bulky extras?"
	case domain.StepDates:
		return "Delivery and collection"
	case domain.StepSearching:
		return "Finding providers"
	case domain.StepProviders:
		return "Compare providers"
	case domain.StepDetails:
		return "Your details"
	case domain.StepReview:
		return "Review your booking"
	case domain.StepSubmitting:
		return "Placing your booking"
	case domain.StepConfirmed:
		return "Booked"
	default:
		return step.String()
	}
}

func lineStepHint(step domain.Step) string {
	switch step {
	case domain.StepPostcode:
		return "Type your postcode (e.g. SW1A 1AA), optionally 'address <street>', then 'next'."
	case domain.StepPlacement:
		return "[1] driveway or private land   [2] road (needs a permit, " + pricing.FormatGBP(pricing.RoadPermitFee) + ")"
	case domain.StepWaste:
		return "Pick a number or type the waste type."
	case domain.StepSize:
		return "Type a size like '6' or '8yd'."
	case domain.StepItems:
		return "Toggle items by number or name; 'more <item>' / 'less <item>' change quantity. 'next' when done."
	case domain.StepDates:
		return "deliver YYYY-MM-DD and collect YYYY-MM-DD. Use 'A to B' for a flexible range."
	case domain.StepSearching, domain.StepSubmitting:
		return "One moment..."
	case domain.StepProviders:
		return "'pick <n>' to choose, 'compare <n>' to shortlist, 'sort cheapest|earliest|recommended'."
	case domain.StepDetails:
		return "name <full name>, email <address>, phone <number>, then 'next'."
	case domain.StepReview:
		return "Type 'next' to place the booking or 'back' to change something."
	case domain.StepConfirmed:
		return "Type 'book another' to start again or 'quit' to leave."
	default:
		return ""
	}
}

// ── Choices ──────────────────────────────────────────────────────

func lineSet(what, value string) string {
	return fmt.Sprintf("%s: %s", what, value)
}

func lineInvalid(what, input string) string {
	return fmt.Sprintf("%q isn't a valid %s.", input, what)
}

func lineItemToggled(label string, selected bool, qty int) string {
	if selected {
		return fmt.Sprintf("Added %s (x%d).", label, qty)
	}
	return fmt.Sprintf("Removed %s.", label)
}

func lineQuantity(label string, qty int) string {
	return fmt.Sprintf("%s x%d", label, qty)
}

func lineItemsCleared() string {
	return "No extra items."
}

func lineTotal(t domain.Totals) string {
	if t.Total == 0 {
		return "No price yet."
	}
	return "Running total " + pricing.FormatGBP(t.Total) + " inc. VAT"
}

func lineSortMode(mode domain.SortMode) string {
	return fmt.Sprintf("Sorted by %s.", mode)
}

func lineProviderPicked(name string) string {
	return fmt.Sprintf("%s it is. Type 'next' to continue.", name)
}

func lineCompareToggled(name string, on bool, count int) string {
	if on {
		return fmt.Sprintf("Comparing %s (%d/%d).", name, count, domain.MaxCompare)
	}
	return fmt.Sprintf("Stopped comparing %s.", name)
}

func lineCompareFull() string {
	return fmt.Sprintf("You can compare up to %d providers. Remove one first.", domain.MaxCompare)
}

// ── Outcome ──────────────────────────────────────────────────────

func lineConfirmed(ref string) string {
	return fmt.Sprintf("You're booked. Reference %s.", ref)
}

func lineSubmitFailed(err error) string {
	return fmt.Sprintf("Couldn't place the booking: %v", err)
}

func lineReset() string {
	return "Starting a fresh booking."
}

// ── Help ─────────────────────────────────────────────────────────

func helpLines() []string {
	return []string{
		"next / back            move between steps",
		"postcode <pc>          set the delivery postcode",
		"driveway | road        choose placement",
		"waste <type>           choose waste type",
		"size <n>               choose skip size",
		"add <item>             toggle an extra item",
		"more|less <item>       change an item's quantity",
		"deliver / collect      set dates (YYYY-MM-DD, or 'A to B')",
		"sort <mode>            cheapest, earliest, recommended",
		"pick / compare <n>     choose or shortlist a provider",
		"name / email / phone   your contact details",
		"summary                show the booking so far",
		"reset                  start again",
		"quit                   leave",
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
