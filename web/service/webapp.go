package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/protorns/tg-miniapp-server/config"
	"github.com/protorns/tg-miniapp-server/util/common"
)

// WebAppUser is the user object Telegram embeds in signed initData.
type WebAppUser struct {
	Id           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
	IsPremium    bool   `json:"is_premium"`
}

// FullName joins the Telegram first and last name, which seeds the profile
// on first registration.
func (u *WebAppUser) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// TelegramAuthService verifies Telegram WebApp initData payloads.
//
// Telegram signs initData with HMAC-SHA256: the key is SHA256 of the bot
// token, the message is every key except "hash", sorted, rendered as
// "k=v" lines joined with "\n". The hex digest must equal the "hash" key.
type TelegramAuthService struct {
	botToken string
	maxAge   time.Duration

	now func() time.Time
}

func NewTelegramAuthService(botToken string, maxAge time.Duration) *TelegramAuthService {
	return &TelegramAuthService{
		botToken: botToken,
		maxAge:   maxAge,
		now:      time.Now,
	}
}

// ProvideTelegramAuthService builds the service from static config.
func ProvideTelegramAuthService() *TelegramAuthService {
	return NewTelegramAuthService(config.GetBotToken(), config.GetInitDataMaxAge())
}

func (s *TelegramAuthService) secretKey() []byte {
	sum := sha256.Sum256([]byte(s.botToken))
	return sum[:]
}

// Verify checks the signature of initData and returns the embedded user.
func (s *TelegramAuthService) Verify(initData string) (*WebAppUser, error) {
	const op = "TelegramAuthService.Verify"

	if s.botToken == "" {
		return nil, common.Wrap(op, common.ErrBotTokenMissing)
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, common.Wrapf(op, common.ErrUnauthorized, "init data is not a query string")
	}

	theirHash := values.Get("hash")
	if theirHash == "" {
		return nil, common.Wrap(op, common.ErrMissingHash)
	}
	values.Del("hash")

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(values.Get(k))
	}

	mac := hmac.New(sha256.New, s.secretKey())
	mac.Write([]byte(sb.String()))
	ourHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(ourHash), []byte(theirHash)) {
		return nil, common.Wrap(op, common.ErrBadSignature)
	}

	if s.maxAge > 0 {
		authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
		if err != nil {
			return nil, common.Wrap(op, common.ErrInitDataExpired)
		}
		if s.now().Sub(time.Unix(authDate, 0)) > s.maxAge {
			return nil, common.Wrap(op, common.ErrInitDataExpired)
		}
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, common.Wrap(op, common.ErrMissingUser)
	}

	user := &WebAppUser{}
	if err := json.Unmarshal([]byte(userJSON), user); err != nil {
		return nil, common.Wrap(op, common.ErrBadUserJSON)
	}
	if user.Id == 0 {
		return nil, common.Wrap(op, common.ErrBadUserJSON)
	}

	return user, nil
}

// IsAdmin reports whether the given Telegram ID is in the configured admin
// list.
func (s *TelegramAuthService) IsAdmin(tgId int64) bool {
	for _, id := range config.GetAdminChatIDs() {
		if id == tgId {
			return true
		}
	}
	return false
}
