package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "jobscout"

// GetWebhookURL looks up the notification webhook URL. The URL itself is the
// secret (webhook URLs carry their token), so it never lives in config.
func GetWebhookURL(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	u, err := keyring.Get(KeyringService, account)
	if err != nil || strings.TrimSpace(u) == "" {
		return "", errors.New("webhook URL not found in keychain")
	}
	return u, nil
}

func SetWebhookURL(account string, url string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(url) == "" {
		return errors.New("webhook URL is empty")
	}
	return keyring.Set(KeyringService, account, url)
}

func DeleteWebhookURL(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}
