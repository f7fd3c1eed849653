package model

import (
	"fmt"
)

// Fleet holds the headline numbers of the simulated tenant
type Fleet struct {
	TotalDevices      int
	ComplianceRate    int // percent
	AutopilotEnrolled int
	PoliciesApplied   int
}

// DefaultFleet returns the headline numbers shown by the console
func DefaultFleet() Fleet {
	return Fleet{
		TotalDevices:      152,
		ComplianceRate:    94,
		AutopilotEnrolled: 150,
		PoliciesApplied:   48,
	}
}

// Stats returns the analytics cards in display order
func (f Fleet) Stats() []Field {
	return []Field{
		{Label: "Total Devices", Value: fmt.Sprintf("%d", f.TotalDevices)},
		{Label: "Compliance Rate", Value: fmt.Sprintf("%d%%", f.ComplianceRate)},
		{Label: "Autopilot Enrolled", Value: fmt.Sprintf("%d", f.AutopilotEnrolled)},
		{Label: "Policies Applied", Value: fmt.Sprintf("%d", f.PoliciesApplied)},
	}
}

// ComplianceSample is one frame of the compliance pie chart, in percent
type ComplianceSample struct {
	Compliant    float64
	NonCompliant float64
}

// Total returns the sum of both slices
func (cs ComplianceSample) Total() float64 {
	return cs.Compliant + cs.NonCompliant
}

// CompliantShare returns the compliant slice as a fraction of the total
func (cs ComplianceSample) CompliantShare() float64 {
	total := cs.Total()
	if total <= 0 {
		return 0
	}
	return cs.Compliant / total
}
