package config

import (
	"os"
	"strings"
)

// Account is one destination workspace with its resolved credential.
// Token is empty when the environment variable is unset or blank.
type Account struct {
	Name     string `json:"name"`
	TokenEnv string `json:"token_env"`
	Token    string `json:"-"`
}

// HasToken reports whether the account has a usable credential.
func (a Account) HasToken() bool {
	return a.Token != ""
}

// LoadAccounts resolves every configured account's token from the
// environment. Order follows the config file.
func (c *Config) LoadAccounts() []Account {
	return c.lookupAccounts(os.Getenv)
}

func (c *Config) lookupAccounts(getenv func(string) string) []Account {
	accounts := make([]Account, len(c.Accounts))
	for i, entry := range c.Accounts {
		accounts[i] = Account{
			Name:     entry.Name,
			TokenEnv: entry.TokenEnv,
			Token:    strings.TrimSpace(getenv(entry.TokenEnv)),
		}
	}
	return accounts
}
