package entity

// PaymentType values for ExpectedCollection
const (
	PaymentTypeMaintenance = "maintenance"
	PaymentTypeContingency = "contingency"
	PaymentTypeEmergency   = "emergency"
)

// Approval status values for PaymentRecord, in review order
const (
	ApprovalReceived = "Received"
	ApprovalReviewed = "Reviewed"
	ApprovalApproved = "Approved"
)

// IsValidPaymentType reports whether t names a known collection type.
func IsValidPaymentType(t string) bool {
	switch t {
	case PaymentTypeMaintenance, PaymentTypeContingency, PaymentTypeEmergency:
		return true
	}
	return false
}

// IsValidApprovalStatus reports whether s is a known approval status.
func IsValidApprovalStatus(s string) bool {
	switch s {
	case ApprovalReceived, ApprovalReviewed, ApprovalApproved:
		return true
	}
	return false
}
