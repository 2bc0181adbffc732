package notifications

// StatusResponse состояние авторизации отправки писем
type StatusResponse struct {
	Enabled    bool `json:"enabled"`
	Authorized bool `json:"authorized"`
}

// AuthorizeResponse URL страницы согласия, на который переходит клиент
type AuthorizeResponse struct {
	AuthURL string `json:"authUrl"`
}
