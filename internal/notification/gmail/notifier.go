package gmail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

const (
	// ScopeSend разрешение только на отправку писем
	ScopeSend = "https://www.googleapis.com/auth/gmail.send"

	// DefaultSendURL endpoint отправки письма Gmail API
	DefaultSendURL = "https://gmail.googleapis.com/gmail/v1/users/me/messages/send"
)

// Config параметры отправки уведомлений через Gmail
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	SenderEmail  string
	SenderName   string
	ContactEmail string
	Timeout      time.Duration

	// Пустые значения выбирают production endpoints Google
	AuthURL  string
	TokenURL string
	SendURL  string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Notifier отправляет подтверждения бронирования от имени авторизованного аккаунта Gmail
type Notifier struct {
	oauth        *oauth2.Config
	tokens       TokenStore
	httpClient   *http.Client
	sendURL      string
	sender       mail.Address
	contactEmail string
	log          Logger
}

// NewNotifier создает новый экземпляр отправителя уведомлений
func NewNotifier(cfg Config, tokens TokenStore, log Logger) *Notifier {
	endpoint := endpoints.Google
	endpoint.AuthStyle = oauth2.AuthStyleInParams
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	sendURL := cfg.SendURL
	if sendURL == "" {
		sendURL = DefaultSendURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Notifier{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{ScopeSend},
			Endpoint:     endpoint,
		},
		tokens: tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sendURL:      sendURL,
		sender:       mail.Address{Name: cfg.SenderName, Address: cfg.SenderEmail},
		contactEmail: cfg.ContactEmail,
		log:          log,
	}
}

// IsAuthorized сообщает, сохранен ли access token
func (n *Notifier) IsAuthorized(ctx context.Context) bool {
	token, err := n.tokens.Get(ctx, AccessTokenKey)
	if err != nil {
		n.log.Error("IsAuthorized: failed to read access token: %v", err)
		return false
	}
	return token != ""
}

// BeginAuthorization возвращает URL страницы согласия Google.
// access_type=offline и prompt=consent гарантируют выдачу refresh token.
func (n *Notifier) BeginAuthorization(state string) string {
	return n.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// CompleteAuthorization обменивает код авторизации на токены и сохраняет их
func (n *Notifier) CompleteAuthorization(ctx context.Context, code string) error {
	token, err := n.oauth.Exchange(n.oauthContext(ctx), code)
	if err != nil {
		n.log.Error("CompleteAuthorization: exchange failed: %v", err)
		return fmt.Errorf("%w: %v", ErrExchange, err)
	}

	if err := n.storeToken(ctx, token); err != nil {
		return err
	}

	n.log.Info("CompleteAuthorization: Gmail tokens stored (refresh token present=%t)", token.RefreshToken != "")
	return nil
}

// Revoke удаляет сохраненные токены
func (n *Notifier) Revoke(ctx context.Context) error {
	if err := n.tokens.Delete(ctx, AccessTokenKey, RefreshTokenKey); err != nil {
		n.log.Error("Revoke: failed to delete tokens: %v", err)
		return err
	}
	n.log.Info("Revoke: Gmail tokens removed")
	return nil
}

// Notify отправляет подтверждение бронирования. Ошибки только логируются.
func (n *Notifier) Notify(ctx context.Context, booking *domain.Booking) bool {
	if err := n.Send(ctx, booking); err != nil {
		n.log.Warn("Notify: confirmation for booking id=%s to %s not sent: %v", booking.ID, booking.Email, err)
		return false
	}
	n.log.Info("Notify: confirmation for booking id=%s sent to %s", booking.ID, booking.Email)
	return true
}

// Send отправляет подтверждение бронирования.
// При ответе 401 выполняется ровно одно обновление токена и одна повторная попытка.
func (n *Notifier) Send(ctx context.Context, booking *domain.Booking) error {
	accessToken, err := n.tokens.Get(ctx, AccessTokenKey)
	if err != nil {
		return err
	}
	if accessToken == "" {
		return domain.ErrAuthRequired
	}

	raw, err := n.compose(booking)
	if err != nil {
		return err
	}

	status, err := n.post(ctx, accessToken, raw)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		n.log.Info("Send: access token rejected, refreshing")

		accessToken, err = n.refresh(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrAuthExpired, err)
		}

		status, err = n.post(ctx, accessToken, raw)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			return fmt.Errorf("%w: refreshed token rejected", domain.ErrAuthExpired)
		}
	}

	if status < 200 || status >= 300 {
		return fmt.Errorf("%w: status %d", ErrSendFailed, status)
	}

	return nil
}

func (n *Notifier) compose(booking *domain.Booking) (string, error) {
	to, err := mail.ParseAddress(booking.Email)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidRecipient, booking.Email, err)
	}

	body, err := renderConfirmation(booking, n.contactEmail)
	if err != nil {
		return "", err
	}
	msg := buildMessage(n.sender, mail.Address{Address: to.Address}, confirmationSubject(booking), body)
	return encodeRaw(msg), nil
}

// post отправляет письмо и возвращает статус ответа
func (n *Notifier) post(ctx context.Context, accessToken, raw string) (int, error) {
	payload, err := json.Marshal(map[string]string{"raw": raw})
	if err != nil {
		return 0, fmt.Errorf("%w: marshal: %v", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.sendURL, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrSendFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to execute request: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusUnauthorized {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		n.log.Warn("Send: Gmail API returned %d: %s", resp.StatusCode, string(body))
	}

	return resp.StatusCode, nil
}

// refresh получает новый access token по сохраненному refresh token
func (n *Notifier) refresh(ctx context.Context) (string, error) {
	refreshToken, err := n.tokens.Get(ctx, RefreshTokenKey)
	if err != nil {
		return "", err
	}
	if refreshToken == "" {
		return "", errNoRefreshToken
	}

	token, err := n.oauth.TokenSource(n.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		n.log.Error("Send: token refresh failed: %v", err)
		return "", fmt.Errorf("refresh: %w", err)
	}

	if err := n.storeToken(ctx, token); err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

func (n *Notifier) storeToken(ctx context.Context, token *oauth2.Token) error {
	if err := n.tokens.Set(ctx, AccessTokenKey, token.AccessToken); err != nil {
		return err
	}
	if token.RefreshToken != "" {
		if err := n.tokens.Set(ctx, RefreshTokenKey, token.RefreshToken); err != nil {
			return err
		}
	}
	return nil
}

// oauthContext передает oauth2 тот же HTTP клиент с таймаутом
func (n *Notifier) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, n.httpClient)
}
