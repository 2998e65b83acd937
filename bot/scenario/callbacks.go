package scenario

import (
	"strconv"
	"strings"
)

// Report browser callback tokens.
// Format: "rp:action:page" or "rp:action:page:rowID".
const (
	CallbackPrefix = "rp:"
	ActionNext     = "next"
	ActionPrev     = "prev"
	ActionRemove   = "remove"
	ActionIgnore   = "ignore"
	ActionOut      = "out"
)

// CallbackData is a parsed report browser token: the action, the page the
// keyboard was rendered for and, for remove, the target sheet row.
type CallbackData struct {
	Action string
	Page   int
	RowID  int
}

// ParseCallback parses a callback token. Returns nil for anything
// malformed; callers treat that as recoverable bad input, never a crash.
func ParseCallback(data string) *CallbackData {
	if !strings.HasPrefix(data, CallbackPrefix) {
		return nil
	}

	parts := strings.Split(strings.TrimPrefix(data, CallbackPrefix), ":")
	if len(parts) < 2 {
		return nil
	}

	switch parts[0] {
	case ActionNext, ActionPrev, ActionRemove, ActionIgnore, ActionOut:
	default:
		return nil
	}

	page, err := strconv.Atoi(parts[1])
	if err != nil || page < 0 {
		return nil
	}

	cb := &CallbackData{Action: parts[0], Page: page}
	if len(parts) > 2 {
		rowID, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil
		}
		cb.RowID = rowID
	}
	return cb
}

// IsCallback checks whether a message payload is a report browser token.
func IsCallback(data string) bool {
	return strings.HasPrefix(data, CallbackPrefix)
}

// BuildCallback renders a token for the given action and page.
func BuildCallback(action string, page int) string {
	return CallbackPrefix + action + ":" + strconv.Itoa(page)
}

// BuildRowCallback renders a token that also targets a sheet row.
func BuildRowCallback(action string, page, rowID int) string {
	return BuildCallback(action, page) + ":" + strconv.Itoa(rowID)
}
