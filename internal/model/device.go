package model

import (
	"time"
)

// ComplianceState represents the compliance verdict shown for a device
type ComplianceState string

const (
	ComplianceCompliant    ComplianceState = "Compliant"
	ComplianceNonCompliant ComplianceState = "Non-compliant"
)

// DeviceStatus represents the enrollment status of a device
type DeviceStatus string

const (
	DeviceStatusActive DeviceStatus = "Active"
)

// CheckInLayout is the display format of a device check-in timestamp
const CheckInLayout = "2006-01-02 15:04"

// DeviceColumns are the device table headers in display order
var DeviceColumns = []string{"Device ID", "User", "Compliance", "Last Check-in", "Status"}

// Device represents a single row of the device management table
type Device struct {
	ID          string          `json:"id"`
	User        string          `json:"user"`
	Compliance  ComplianceState `json:"compliance"`
	LastCheckIn time.Time       `json:"last_check_in"`
	Status      DeviceStatus    `json:"status"`
}

// DeviceDetails extends a device with the fields revealed in the details view
type DeviceDetails struct {
	Device
	OS          string `json:"os"`
	PolicyState string `json:"policy_state"`
}

// Field is a label/value pair rendered in cards and detail views
type Field struct {
	Label string
	Value string
}

// Cells returns the table cells of the device in DeviceColumns order
func (d Device) Cells() []string {
	return []string{
		d.ID,
		d.User,
		string(d.Compliance),
		d.LastCheckIn.Format(CheckInLayout),
		string(d.Status),
	}
}

// IsCompliant reports whether the device passed its compliance check
func (d Device) IsCompliant() bool {
	return d.Compliance == ComplianceCompliant
}

// Fields returns the rows of the device details view
func (dd DeviceDetails) Fields() []Field {
	cells := dd.Cells()
	fields := make([]Field, 0, len(cells)+2)
	for i, column := range DeviceColumns {
		fields = append(fields, Field{Label: column, Value: cells[i]})
	}
	return append(fields,
		Field{Label: "OS", Value: dd.OS},
		Field{Label: "Intune Policy", Value: dd.PolicyState},
	)
}

// CountCompliant returns how many devices are compliant
func CountCompliant(devices []Device) int {
	n := 0
	for _, d := range devices {
		if d.IsCompliant() {
			n++
		}
	}
	return n
}
