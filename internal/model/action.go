package model

import (
	"fmt"
	"strings"
)

// Action keys
const (
	ActionAutopilotSync   = "autopilot"
	ActionApplyPolicies   = "policies"
	ActionCheckCompliance = "compliance"
	ActionGenerateReport  = "report"
)

// DefaultSuccessTitle is the title of the dialog shown after an action completes
const DefaultSuccessTitle = "Success"

const actionLookupSeparators = " _-"

// Action describes one console button and the simulated task it triggers
type Action struct {
	Key            string
	Button         string // button caption
	Label          string // task label shown while running
	SuccessTitle   string
	SuccessMessage string
}

// Actions returns the console actions in display order. Messages quote the
// fleet numbers so the simulated outcome matches the analytics cards.
func Actions(f Fleet) []Action {
	return []Action{
		{
			Key:          ActionAutopilotSync,
			Button:       "Run Autopilot Sync",
			Label:        "Autopilot Sync",
			SuccessTitle: DefaultSuccessTitle,
			SuccessMessage: fmt.Sprintf("Zero-touch deployment completed for %d devices using Autopilot and PowerShell scripts.",
				f.TotalDevices),
		},
		{
			Key:          ActionApplyPolicies,
			Button:       "Apply Policies",
			Label:        "Policy Application",
			SuccessTitle: DefaultSuccessTitle,
			SuccessMessage: fmt.Sprintf("App protection and conditional access policies applied to %d devices via Intune.",
				f.TotalDevices),
		},
		{
			Key:          ActionCheckCompliance,
			Button:       "Check Compliance",
			Label:        "Compliance Check",
			SuccessTitle: DefaultSuccessTitle,
			SuccessMessage: fmt.Sprintf("Compliance check completed: %d%% of %d devices are compliant with Azure AD policies.",
				f.ComplianceRate, f.TotalDevices),
		},
		{
			Key:          ActionGenerateReport,
			Button:       "Generate Report",
			Label:        "Report Generation",
			SuccessTitle: DefaultSuccessTitle,
			SuccessMessage: fmt.Sprintf("M365 Security Center report generated for %d devices, detailing compliance and security status.",
				f.TotalDevices),
		},
	}
}

// FindAction looks an action up by key or by label, ignoring case, spaces,
// dashes and underscores ("autopilot", "Autopilot Sync", "autopilot-sync").
func FindAction(actions []Action, name string) (Action, bool) {
	needle := normalizeActionName(name)
	if needle == "" {
		return Action{}, false
	}
	for _, a := range actions {
		if needle == normalizeActionName(a.Key) || needle == normalizeActionName(a.Label) {
			return a, true
		}
	}
	return Action{}, false
}

func normalizeActionName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(actionLookupSeparators, r) {
			return -1
		}
		return r
	}, s)
}
