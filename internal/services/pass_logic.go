package services

import (
	"errors"
	"time"

	"github.com/surajbi2/secureIn-backend/internal/models"
)

var (
	ErrPassNotFound    = errors.New("pass not found")
	ErrPassExpired     = errors.New("pass has expired")
	ErrPassNotYetValid = errors.New("pass is not yet valid")
	ErrPassCancelled   = errors.New("pass has been cancelled")
	ErrPassAlreadyUsed = errors.New("pass has already been fully used")
	ErrScanConflict    = errors.New("pass was updated by a concurrent scan")
)

// Verdict is the result of evaluating a pass against the clock. Status is the
// effective status to report, which may differ from the stored one when the
// validity window has lapsed since the last write.
type Verdict struct {
	Status  string
	Message string

	// PersistExpiry is set when the stored status is stale and should be
	// written back as expired.
	PersistExpiry bool
}

// EvaluatePass computes the read-only verdict for a pass. Stored terminal
// statuses win over the clock; only an 'active' pass is re-checked against
// its validity window.
func EvaluatePass(pass *models.EntryPass, now time.Time) Verdict {
	switch pass.Status {
	case models.PassStatusCancelled:
		return Verdict{Status: models.PassStatusCancelled, Message: "Pass is no longer active"}
	case models.PassStatusExpired:
		return Verdict{Status: models.PassStatusExpired, Message: "Pass has expired"}
	case models.PassStatusUsed:
		return Verdict{Status: models.PassStatusUsed, Message: "Pass is no longer active"}
	case models.PassStatusDeleted:
		return Verdict{Status: models.PassStatusDeleted, Message: "Pass is no longer active"}
	}

	if now.After(pass.ValidUntil) {
		return Verdict{Status: models.PassStatusExpired, Message: "Pass has expired", PersistExpiry: true}
	}
	if now.Before(pass.ValidFrom) {
		return Verdict{Status: "pending", Message: "Pass is not yet valid"}
	}

	if pass.Entered() {
		return Verdict{Status: models.PassStatusActive, Message: "Pass is valid. Visitor is currently inside"}
	}
	return Verdict{Status: models.PassStatusActive, Message: "Pass is valid"}
}

// NextScanAction decides what a gate scan should do with a pass right now.
// The exited check runs before the status guard so a third scan of a spent
// pass reports "already used" rather than a generic status error.
func NextScanAction(pass *models.EntryPass, now time.Time) (string, error) {
	if pass.Exited() {
		return "", ErrPassAlreadyUsed
	}

	switch pass.Status {
	case models.PassStatusCancelled:
		return "", ErrPassCancelled
	case models.PassStatusExpired:
		return "", ErrPassExpired
	case models.PassStatusUsed:
		return "", ErrPassAlreadyUsed
	case models.PassStatusDeleted:
		return "", ErrPassNotFound
	}

	if now.After(pass.ValidUntil) {
		return "", ErrPassExpired
	}
	if now.Before(pass.ValidFrom) {
		return "", ErrPassNotYetValid
	}

	if !pass.Entered() {
		return models.ScanActionEntry, nil
	}
	return models.ScanActionExit, nil
}
