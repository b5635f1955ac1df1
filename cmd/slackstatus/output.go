package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matsen/slackstatus/internal/config"
	"github.com/matsen/slackstatus/internal/dispatch"
	"github.com/matsen/slackstatus/internal/slack"
	"github.com/matsen/slackstatus/internal/status"
)

// outputJSON writes a value as formatted JSON to w.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if jsonOutput {
		outputJSON(os.Stdout, ErrorResponse{Error: msg})
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResult is the JSON output of a status action.
type StatusResult struct {
	Action   string             `json:"action"`
	Cleared  bool               `json:"cleared"`
	Request  status.Request     `json:"request"`
	Outcomes []dispatch.Outcome `json:"outcomes"`
	Summary  dispatch.Summary   `json:"summary"`
}

// AccountInfo is one entry of the accounts command output. The token
// itself is never printed.
type AccountInfo struct {
	Name        string `json:"name"`
	TokenEnv    string `json:"token_env"`
	HasToken    bool   `json:"has_token"`
	TokenPrefix string `json:"token_prefix,omitempty"`
}

// AccountsResponse is the JSON output of the accounts command.
type AccountsResponse struct {
	Accounts []AccountInfo `json:"accounts"`
}

// PresetsResponse is the JSON output of the presets command.
type PresetsResponse struct {
	Presets []status.ActionInfo `json:"presets"`
}

// humanReporter prints one line per workspace as outcomes arrive.
type humanReporter struct {
	w io.Writer
}

func (r humanReporter) Report(req status.Request, o dispatch.Outcome) {
	fmt.Fprintln(r.w, formatOutcomeHuman(req, o))
}

// formatOutcomeHuman formats one outcome. Tokens are only ever shown by prefix.
func formatOutcomeHuman(req status.Request, o dispatch.Outcome) string {
	verb, noun := "updated", "updating"
	if req.IsClear() {
		verb, noun = "cleared", "clearing"
	}

	switch o.Status {
	case dispatch.StatusOK:
		return fmt.Sprintf("Status %s successfully in workspace with token: %s", verb, o.TokenPrefix)
	case dispatch.StatusSkipped:
		return fmt.Sprintf("No valid Slack token found for account %s (%s)", o.Account, o.TokenEnv)
	default:
		line := fmt.Sprintf("Error %s status in workspace with token: %s: %s", noun, o.TokenPrefix, o.Error)
		if o.Hint != "" {
			line += " (" + o.Hint + ")"
		}
		return line
	}
}

// formatAccountsHuman formats the accounts list as aligned columns.
func formatAccountsHuman(accounts []AccountInfo) string {
	if len(accounts) == 0 {
		return "No accounts configured.\n"
	}

	nameWidth, envWidth := len("Account"), len("Env")
	for _, a := range accounts {
		nameWidth = max(nameWidth, len(a.Name))
		envWidth = max(envWidth, len(a.TokenEnv))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %s\n", nameWidth, "Account", envWidth, "Env", "Token"))
	sb.WriteString(fmt.Sprintf("%s  %s  %s\n", strings.Repeat("-", nameWidth), strings.Repeat("-", envWidth), strings.Repeat("-", 15)))
	for _, a := range accounts {
		token := "(not set)"
		if a.HasToken {
			token = a.TokenPrefix + "..."
		}
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %s\n", nameWidth, a.Name, envWidth, a.TokenEnv, token))
	}
	return sb.String()
}

// formatPresetsHuman formats the preset list.
func formatPresetsHuman(presets []status.ActionInfo) string {
	var sb strings.Builder
	for _, p := range presets {
		sb.WriteString(p.Name)
		if p.Text != "" {
			sb.WriteString(fmt.Sprintf("  %q", p.Text))
		}
		if p.Emoji != "" {
			sb.WriteString("  " + p.Emoji)
		}
		if p.Minutes > 0 {
			sb.WriteString(fmt.Sprintf("  %dm", p.Minutes))
		}
		sb.WriteString("\n")
		if p.Note != "" {
			sb.WriteString("    " + p.Note + "\n")
		}
	}
	return sb.String()
}

// accountInfos converts accounts to their printable form.
func accountInfos(accounts []config.Account) []AccountInfo {
	infos := make([]AccountInfo, len(accounts))
	for i, a := range accounts {
		infos[i] = AccountInfo{
			Name:     a.Name,
			TokenEnv: a.TokenEnv,
			HasToken: a.HasToken(),
		}
		if a.HasToken() {
			infos[i].TokenPrefix = slack.TokenPrefix(a.Token)
		}
	}
	return infos
}
