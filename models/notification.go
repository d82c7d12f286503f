package models

// TelegramMessage is the body of a manual notification request.
type TelegramMessage struct {
	Message string `json:"message" binding:"required"`
}

// NotificationPayload is queued for the notification worker.
type NotificationPayload struct {
	ChatID string `json:"chatId"`
	Text   string `json:"text"`
}
