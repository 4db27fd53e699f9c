// Package auth verifies Telegram Web App init data.
//
// The init data is a URL-query-encoded string signed by the platform with a
// key derived from the bot token. Verification follows the documented
// procedure: strip the hash field, sort the remaining pairs by key, join them
// with newlines, and check an HMAC-SHA256 over that string keyed by
// HMAC-SHA256("WebAppData", bot_token).
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strings"
)

// ErrInvalidInitData is returned for every verification failure. Malformed
// input, a missing hash, a signature mismatch and a bad user payload are
// deliberately indistinguishable to the caller.
var ErrInvalidInitData = errors.New("invalid init data")

// TelegramUser is the identity claim embedded in verified init data.
type TelegramUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PhotoURL  string `json:"photo_url"`
}

// Validate checks that initData was signed by the platform for the given bot
// token and returns the embedded user. It is a pure function with no side
// effects.
func Validate(initData, botToken string) (TelegramUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return TelegramUser{}, ErrInvalidInitData
	}

	hashValues, ok := values["hash"]
	if !ok || len(hashValues) == 0 {
		return TelegramUser{}, ErrInvalidInitData
	}
	receivedHash := hashValues[len(hashValues)-1]
	delete(values, "hash")

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(values[k][len(values[k])-1])
	}

	// secret key = HMAC-SHA256 keyed by "WebAppData" over the bot token
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	secretKey := mac.Sum(nil)

	mac = hmac.New(sha256.New, secretKey)
	mac.Write([]byte(b.String()))
	computedHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(computedHash), []byte(receivedHash)) {
		return TelegramUser{}, ErrInvalidInitData
	}

	if userValues, ok := values["user"]; ok {
		var user TelegramUser
		if err := json.Unmarshal([]byte(userValues[len(userValues)-1]), &user); err != nil {
			return TelegramUser{}, ErrInvalidInitData
		}
		return user, nil
	}
	return TelegramUser{}, nil
}
