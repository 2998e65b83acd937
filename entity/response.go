package entity

import "time"

// ResponseType tags the Response union. Renderers must switch over every
// type and treat an unknown tag as a fatal programming error.
type ResponseType string

const (
	TypeTextMessages   ResponseType = "text_messages"
	TypeReplyKeyboard  ResponseType = "reply_keyboard"
	TypeCalendar       ResponseType = "calendar"
	TypeInlineKeyboard ResponseType = "inline_keyboard"
	TypeFinal          ResponseType = "final"
)

// InlineButton is one inline keyboard button: a label plus an opaque
// callback token.
type InlineButton struct {
	Text         string
	CallbackData string
}

type TextMessagesResponse struct {
	Messages []string
}

type ReplyKeyboardResponse struct {
	Messages        []string
	Buttons         [][]string
	ResizeKeyboard  bool
	OneTimeKeyboard bool
}

type CalendarResponse struct {
	Messages     []string
	Year         int
	Month        time.Month
	SkipCalendar bool
}

type InlineKeyboardResponse struct {
	Messages            []string
	Inlines             [][]InlineButton
	DeleteReplyKeyboard bool
	EditReplyKeyboard   bool
}

// Response describes what to present to the user next. Exactly one payload,
// matching Type, is non-nil; TypeFinal carries none and signals that the
// conversation is over and the top-level menu applies again.
type Response struct {
	Type           ResponseType
	Text           *TextMessagesResponse
	ReplyKeyboard  *ReplyKeyboardResponse
	Calendar       *CalendarResponse
	InlineKeyboard *InlineKeyboardResponse
}

func NewTextResponse(messages ...string) Response {
	return Response{
		Type: TypeTextMessages,
		Text: &TextMessagesResponse{Messages: messages},
	}
}

func NewReplyKeyboardResponse(messages []string, buttons [][]string) Response {
	return Response{
		Type: TypeReplyKeyboard,
		ReplyKeyboard: &ReplyKeyboardResponse{
			Messages:       messages,
			Buttons:        buttons,
			ResizeKeyboard: true,
		},
	}
}

func NewCalendarResponse(messages []string, year int, month time.Month, skip bool) Response {
	return Response{
		Type: TypeCalendar,
		Calendar: &CalendarResponse{
			Messages:     messages,
			Year:         year,
			Month:        month,
			SkipCalendar: skip,
		},
	}
}

func NewInlineKeyboardResponse(messages []string, inlines [][]InlineButton) Response {
	return Response{
		Type: TypeInlineKeyboard,
		InlineKeyboard: &InlineKeyboardResponse{
			Messages: messages,
			Inlines:  inlines,
		},
	}
}

func NewFinalResponse() Response {
	return Response{Type: TypeFinal}
}
