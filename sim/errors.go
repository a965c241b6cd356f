// sim/errors.go
package sim

import "fmt"

// ErrNoRouteToHost is returned when a device's routing table has no entry
// for a requested destination.
type ErrNoRouteToHost struct {
	DeviceID      int
	DestinationID int
}

func (e *ErrNoRouteToHost) Error() string {
	return fmt.Sprintf("no route to host: device %d has no route to %d", e.DeviceID, e.DestinationID)
}

// ErrDeviceNotFound is returned by Environment lookups when an id is unknown.
type ErrDeviceNotFound struct {
	DeviceID int
}

func (e *ErrDeviceNotFound) Error() string {
	return fmt.Sprintf("device not found: %d", e.DeviceID)
}

// ErrInsufficientResource describes a device that cannot satisfy a
// process's resource request. No function in this package returns it;
// Placement reports such failures as RejectionDevices.
type ErrInsufficientResource struct {
	DeviceID int
	Resource string
}

func (e *ErrInsufficientResource) Error() string {
	return fmt.Sprintf("insufficient %s on device %d", e.Resource, e.DeviceID)
}

// ErrInsufficientBandwidth describes a link request for which no route
// between two devices has enough spare bandwidth. No function in this
// package returns it; Placement reports such failures as RejectionLinks.
type ErrInsufficientBandwidth struct {
	Source, Destination int
	Requested           float64
}

func (e *ErrInsufficientBandwidth) Error() string {
	return fmt.Sprintf("insufficient bandwidth from %d to %d: requested %.2f", e.Source, e.Destination, e.Requested)
}

// ErrInconsistentLedger signals that a device's current usage does not match
// the last sample of its resource history. This indicates a programmer error
// in the ledger bookkeeping and is treated as fatal by callers (§7).
type ErrInconsistentLedger struct {
	DeviceID int
	Resource string
}

func (e *ErrInconsistentLedger) Error() string {
	return fmt.Sprintf("inconsistent ledger on device %d for resource %q: usage does not match history", e.DeviceID, e.Resource)
}

// ErrTimeRegression signals an allocation attempted at a time before the
// resource's last recorded history sample, without force.
type ErrTimeRegression struct {
	DeviceID       int
	Resource       string
	RequestedTime  int64
	LastKnownTime  int64
}

func (e *ErrTimeRegression) Error() string {
	return fmt.Sprintf("time regression on device %d resource %q: t=%d before last history time %d", e.DeviceID, e.Resource, e.RequestedTime, e.LastKnownTime)
}

// RejectionReason categorizes why a Placement was ultimately dropped (§7).
type RejectionReason string

const (
	RejectionUnknown RejectionReason = "unknown"
	RejectionDevices RejectionReason = "devices"
	RejectionLinks   RejectionReason = "links"
)
