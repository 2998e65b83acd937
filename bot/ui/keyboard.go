// Package ui builds Telegram keyboard markups from the transport-neutral
// response payloads.
package ui

import (
	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"timekeeper/entity"
)

// ReplyKeyboard converts button labels into a reply keyboard markup.
func ReplyKeyboard(resp *entity.ReplyKeyboardResponse) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, len(resp.Buttons))
	for i, row := range resp.Buttons {
		buttons := make([]tgbotapi.KeyboardButton, len(row))
		for j, text := range row {
			buttons[j] = tgbotapi.KeyboardButton{Text: text}
		}
		rows[i] = buttons
	}
	return tgbotapi.ReplyKeyboardMarkup{
		Keyboard:        rows,
		ResizeKeyboard:  resp.ResizeKeyboard,
		OneTimeKeyboard: resp.OneTimeKeyboard,
	}
}

// InlineKeyboard converts inline button rows into an inline keyboard markup.
func InlineKeyboard(inlines [][]entity.InlineButton) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, len(inlines))
	for i, row := range inlines {
		buttons := make([]tgbotapi.InlineKeyboardButton, len(row))
		for j, button := range row {
			buttons[j] = tgbotapi.InlineKeyboardButton{
				Text:         button.Text,
				CallbackData: button.CallbackData,
			}
		}
		rows[i] = buttons
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// RemoveKeyboard hides a previously sent reply keyboard.
func RemoveKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.ReplyKeyboardRemove{RemoveKeyboard: true}
}
