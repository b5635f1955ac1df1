// Package dispatch applies one status request to every configured account.
//
// Each account is attempted independently: a missing credential or a
// remote failure is recorded in that account's Outcome and never stops
// the remaining accounts from being processed. Nothing is retried.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/matsen/slackstatus/internal/config"
	"github.com/matsen/slackstatus/internal/slack"
	"github.com/matsen/slackstatus/internal/status"
)

// Outcome statuses.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// NoCredentialDetail is the error detail for accounts without a token.
const NoCredentialDetail = "no valid credential"

// Outcome is the result of applying a request to one account.
type Outcome struct {
	Account     string `json:"account"`
	TokenEnv    string `json:"token_env"`
	TokenPrefix string `json:"token_prefix,omitempty"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	Hint        string `json:"hint,omitempty"`
}

// Success reports whether the account was updated.
func (o Outcome) Success() bool {
	return o.Status == StatusOK
}

// ProfileSetter updates the status fields of a token owner's profile.
// *slack.Client implements it.
type ProfileSetter interface {
	SetProfile(ctx context.Context, token string, p slack.Profile) error
}

// Reporter receives outcomes in account order.
type Reporter interface {
	Report(req status.Request, o Outcome)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(req status.Request, o Outcome)

// Report calls f.
func (f ReporterFunc) Report(req status.Request, o Outcome) {
	f(req, o)
}

// Dispatcher applies requests to a fixed list of accounts.
type Dispatcher struct {
	setter   ProfileSetter
	accounts []config.Account
	workers  int
	reporter Reporter
	now      func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithWorkers sets how many accounts are updated concurrently.
// Values below 2 keep dispatch sequential.
func WithWorkers(n int) Option {
	return func(d *Dispatcher) {
		d.workers = n
	}
}

// WithReporter sets the outcome reporter.
func WithReporter(r Reporter) Option {
	return func(d *Dispatcher) {
		d.reporter = r
	}
}

// WithClock sets the time source used to compute expiration timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// New creates a Dispatcher for accounts. The account slice is copied.
func New(setter ProfileSetter, accounts []config.Account, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		setter:   setter,
		accounts: append([]config.Account(nil), accounts...),
		workers:  1,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ApplyToAll applies req to every account and returns one Outcome per
// account in configuration order.
func (d *Dispatcher) ApplyToAll(ctx context.Context, req status.Request) []Outcome {
	profile := d.profileFor(req)

	if d.workers <= 1 {
		outcomes := make([]Outcome, 0, len(d.accounts))
		for _, account := range d.accounts {
			o := d.apply(ctx, account, profile)
			d.report(req, o)
			outcomes = append(outcomes, o)
		}
		return outcomes
	}

	outcomes := make([]Outcome, len(d.accounts))
	var wg sync.WaitGroup
	sem := make(chan struct{}, d.workers)

	for i, account := range d.accounts {
		wg.Add(1)
		go func(idx int, acct config.Account) {
			defer wg.Done()
			sem <- struct{}{}        // acquire semaphore
			defer func() { <-sem }() // release semaphore
			outcomes[idx] = d.apply(ctx, acct, profile)
		}(i, account)
	}
	wg.Wait()

	for _, o := range outcomes {
		d.report(req, o)
	}
	return outcomes
}

// profileFor converts req to the profile fields sent to Slack. The clear
// request maps to all-zero fields; otherwise expiration is an absolute
// Unix timestamp.
func (d *Dispatcher) profileFor(req status.Request) slack.Profile {
	if req.IsClear() {
		return slack.Profile{}
	}
	return slack.Profile{
		StatusText:       req.Text,
		StatusEmoji:      req.Emoji,
		StatusExpiration: d.now().Add(req.Expiration()).Unix(),
	}
}

func (d *Dispatcher) apply(ctx context.Context, account config.Account, profile slack.Profile) Outcome {
	o := Outcome{
		Account:  account.Name,
		TokenEnv: account.TokenEnv,
	}

	if !account.HasToken() {
		o.Status = StatusSkipped
		o.Error = NoCredentialDetail
		return o
	}

	o.TokenPrefix = slack.TokenPrefix(account.Token)
	if err := d.setter.SetProfile(ctx, account.Token, profile); err != nil {
		o.Status = StatusFailed
		o.Error = slack.ErrorDetail(err)
		o.Hint = slack.Hint(err)
		return o
	}

	o.Status = StatusOK
	return o
}

func (d *Dispatcher) report(req status.Request, o Outcome) {
	if d.reporter != nil {
		d.reporter.Report(req, o)
	}
}

// Summary counts outcomes by status.
type Summary struct {
	OK      int `json:"ok"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Summarize counts outcomes by status.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Status {
		case StatusOK:
			s.OK++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}
