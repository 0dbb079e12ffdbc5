package resendmail

// sendRequest тело запроса POST /emails
type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// sendResponse успешный ответ
type sendResponse struct {
	ID string `json:"id"`
}

// ErrorResponse модель ошибки от провайдера
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}
