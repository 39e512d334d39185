// Package command turns typed terminal input into structured commands.
package command

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// KeywordParser matches input against keyword patterns. When nothing
// matches, the current step decides what a bare argument means, so
// "garden" on the waste step is a waste choice.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex *regexp.Regexp
	cmd   domain.CommandType
	// arg is the capture group holding the payload, 0 for none.
	arg int
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(next|continue|n|ok|confirm|done)$`), domain.CmdNext, 0},
		{regexp.MustCompile(`(?i)^(back|b|prev|previous)$`), domain.CmdBack, 0},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.CmdHelp, 0},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), domain.CmdQuit, 0},
		{regexp.MustCompile(`(?i)^(summary|review|total|price)$`), domain.CmdSummary, 0},
		{regexp.MustCompile(`(?i)^(reset|start over|book another|new)$`), domain.CmdReset, 0},
		{regexp.MustCompile(`(?i)^(clear|clear items|no items|none)$`), domain.CmdClearItems, 0},

		{regexp.MustCompile(`(?i)^(postcode|post code|pc)\s+(.+)$`), domain.CmdPostcode, 2},
		{regexp.MustCompile(`(?i)^(address|addr)\s+(.+)$`), domain.CmdAddress, 2},
		{regexp.MustCompile(`(?i)^(placement|place|put)\s+(.+)$`), domain.CmdPlacement, 2},
		{regexp.MustCompile(`(?i)^(driveway|property|road|street)$`), domain.CmdPlacement, 1},
		{regexp.MustCompile(`(?i)^(waste|type)\s+(.+)$`), domain.CmdWaste, 2},
		{regexp.MustCompile(`(?i)^size\s+(.+)$`), domain.CmdSize, 1},
		{regexp.MustCompile(`(?i)^(\d{1,2}\s*(yd|yard|yards))$`), domain.CmdSize, 1},
		{regexp.MustCompile(`(?i)^(item|add|remove|toggle)\s+(.+)$`), domain.CmdItem, 2},
		{regexp.MustCompile(`(?i)^(deliver|delivery)\s+(.+)$`), domain.CmdDeliver, 2},
		{regexp.MustCompile(`(?i)^(collect|collection)\s+(.+)$`), domain.CmdCollect, 2},
		{regexp.MustCompile(`(?i)^(sort|order)\s+(.+)$`), domain.CmdSort, 2},
		{regexp.MustCompile(`(?i)^(cheapest|earliest|recommended)$`), domain.CmdSort, 1},
		{regexp.MustCompile(`(?i)^(pick|choose|select)\s+(.+)$`), domain.CmdPick, 2},
		{regexp.MustCompile(`(?i)^compare\s+(.+)$`), domain.CmdCompare, 1},
		{regexp.MustCompile(`(?i)^name\s+(.+)$`), domain.CmdName, 1},
		{regexp.MustCompile(`(?i)^email\s+(.+)$`), domain.CmdEmail, 1},
		{regexp.MustCompile(`(?i)^(phone|tel|mobile)\s+(.+)$`), domain.CmdPhone, 2},
	}
	return p
}

var (
	quantityRe = regexp.MustCompile(`(?i)^(qty|quantity)\s+(.+?)\s+([+-]?\d+)$`)
	moreLessRe = regexp.MustCompile(`(?i)^(more|less|fewer)\s+(.+)$`)
)

// Parse converts user input into a command.
func (p *KeywordParser) Parse(ctx context.Context, input string, step domain.Step) (*domain.Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Command{Type: domain.CmdUnknown}, nil
	}

	p.log.Debug("parsing input: %q (step %s)", trimmed, step)

	// Bare numbers pick from whatever list the step shows.
	if len(trimmed) <= 2 && isDigits(trimmed) {
		n, _ := strconv.Atoi(trimmed)
		switch step {
		case domain.StepSize:
			return &domain.Command{Type: domain.CmdSize, Payload: trimmed}, nil
		case domain.StepProviders:
			return &domain.Command{Type: domain.CmdPick, Payload: trimmed, Amount: n}, nil
		}
		return &domain.Command{Type: domain.CmdSelect, Payload: trimmed, Amount: n}, nil
	}

	if m := quantityRe.FindStringSubmatch(trimmed); m != nil {
		n, _ := strconv.Atoi(strings.TrimPrefix(m[3], "+"))
		return &domain.Command{Type: domain.CmdQuantity, Payload: strings.TrimSpace(m[2]), Amount: n}, nil
	}
	if m := moreLessRe.FindStringSubmatch(trimmed); m != nil {
		delta := 1
		if !strings.EqualFold(m[1], "more") {
			delta = -1
		}
		return &domain.Command{Type: domain.CmdQuantity, Payload: strings.TrimSpace(m[2]), Amount: delta}, nil
	}

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched command: %s", rule.cmd)
		cmd := &domain.Command{Type: rule.cmd}
		if rule.arg > 0 {
			cmd.Payload = strings.TrimSpace(m[rule.arg])
		}
		return cmd, nil
	}

	if cmd := bareArgument(trimmed, step); cmd != nil {
		p.log.Debug("bare argument on %s step: %s", step, cmd.Type)
		return cmd, nil
	}

	p.log.Debug("no match, returning unknown command")
	return &domain.Command{Type: domain.CmdUnknown, Payload: trimmed}, nil
}

// bareArgument interprets unprefixed text as the value the step asks for.
func bareArgument(s string, step domain.Step) *domain.Command {
	var t domain.CommandType
	switch step {
	case domain.StepPostcode:
		t = domain.CmdPostcode
	case domain.StepWaste:
		t = domain.CmdWaste
	case domain.StepSize:
		t = domain.CmdSize
	case domain.StepItems:
		t = domain.CmdItem
	case domain.StepProviders:
		t = domain.CmdPick
	default:
		return nil
	}
	return &domain.Command{Type: t, Payload: s}
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
