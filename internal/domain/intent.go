package domain

// CommandType classifies what the user wants to do.
type CommandType int

const (
	CmdUnknown CommandType = iota
	CmdNext
	CmdBack
	CmdPostcode
	CmdAddress
	CmdPlacement
	CmdWaste
	CmdSize
	CmdItem
	CmdQuantity
	CmdClearItems
	CmdDeliver
	CmdCollect
	CmdSort
	CmdPick
	CmdCompare
	CmdName
	CmdEmail
	CmdPhone
	CmdSummary
	CmdReset
	CmdHelp
	CmdQuit
	CmdSelect // bare number, meaning depends on the current step
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

var commandNames = map[CommandType]string{
	CmdNext:       "next",
	CmdBack:       "back",
	CmdPostcode:   "postcode",
	CmdAddress:    "address",
	CmdPlacement:  "placement",
	CmdWaste:      "waste",
	CmdSize:       "size",
	CmdItem:       "item",
	CmdQuantity:   "quantity",
	CmdClearItems: "clear_items",
	CmdDeliver:    "deliver",
	CmdCollect:    "collect",
	CmdSort:       "sort",
	CmdPick:       "pick",
	CmdCompare:    "compare",
	CmdName:       "name",
	CmdEmail:      "email",
	CmdPhone:      "phone",
	CmdSummary:    "summary",
	CmdReset:      "reset",
	CmdHelp:       "help",
	CmdQuit:       "quit",
	CmdSelect:     "select",
}

// Command represents a parsed user action.
type Command struct {
	Type    CommandType
	Payload string // argument text, e.g. the postcode or item label
	Amount  int    // quantity delta or selected index where relevant
}
