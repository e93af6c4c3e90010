package services

import (
	"testing"
	"time"

	"github.com/surajbi2/secureIn-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func testPass(status string, entryStatus *string, validFrom, validUntil time.Time) *models.EntryPass {
	return &models.EntryPass{
		ID:          1,
		PassID:      "A1B2C3",
		VisitorName: "Test Visitor",
		Status:      status,
		EntryStatus: entryStatus,
		ValidFrom:   validFrom,
		ValidUntil:  validUntil,
	}
}

func TestEvaluatePass(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	within := testPass(models.PassStatusActive, nil, now.Add(-time.Hour), now.Add(time.Hour))

	tests := []struct {
		name          string
		pass          *models.EntryPass
		wantStatus    string
		wantMessage   string
		wantPersisted bool
	}{
		{
			name:        "cancelled wins over window",
			pass:        testPass(models.PassStatusCancelled, nil, now.Add(-time.Hour), now.Add(time.Hour)),
			wantStatus:  models.PassStatusCancelled,
			wantMessage: "Pass is no longer active",
		},
		{
			name:        "stored expired",
			pass:        testPass(models.PassStatusExpired, nil, now.Add(-2*time.Hour), now.Add(-time.Hour)),
			wantStatus:  models.PassStatusExpired,
			wantMessage: "Pass has expired",
		},
		{
			name:        "used pass",
			pass:        testPass(models.PassStatusUsed, strPtr(models.EntryStatusExited), now.Add(-time.Hour), now.Add(time.Hour)),
			wantStatus:  models.PassStatusUsed,
			wantMessage: "Pass is no longer active",
		},
		{
			name:          "active but overdue needs write-back",
			pass:          testPass(models.PassStatusActive, nil, now.Add(-2*time.Hour), now.Add(-time.Minute)),
			wantStatus:    models.PassStatusExpired,
			wantMessage:   "Pass has expired",
			wantPersisted: true,
		},
		{
			name:        "not yet valid",
			pass:        testPass(models.PassStatusActive, nil, now.Add(time.Hour), now.Add(2*time.Hour)),
			wantStatus:  "pending",
			wantMessage: "Pass is not yet valid",
		},
		{
			name:        "valid unscanned",
			pass:        within,
			wantStatus:  models.PassStatusActive,
			wantMessage: "Pass is valid",
		},
		{
			name:        "valid with visitor inside",
			pass:        testPass(models.PassStatusActive, strPtr(models.EntryStatusEntered), now.Add(-time.Hour), now.Add(time.Hour)),
			wantStatus:  models.PassStatusActive,
			wantMessage: "Pass is valid. Visitor is currently inside",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluatePass(tt.pass, now)
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
			if got.PersistExpiry != tt.wantPersisted {
				t.Errorf("PersistExpiry = %v, want %v", got.PersistExpiry, tt.wantPersisted)
			}
		})
	}
}

func TestEvaluatePassIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	pass := testPass(models.PassStatusActive, nil, now.Add(-2*time.Hour), now.Add(-time.Minute))

	first := EvaluatePass(pass, now)
	if !first.PersistExpiry {
		t.Fatal("first evaluation should request expiry write-back")
	}

	// After the write-back the stored status is expired; re-evaluating must
	// give the same verdict without another write.
	pass.Status = models.PassStatusExpired
	second := EvaluatePass(pass, now)
	if second.PersistExpiry {
		t.Error("second evaluation should not request another write-back")
	}
	if second.Status != first.Status || second.Message != first.Message {
		t.Errorf("verdict changed after write-back: %+v vs %+v", second, first)
	}
}

func TestNextScanAction(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		pass        *models.EntryPass
		wantAction  string
		wantErr     error
	}{
		{
			name:       "first scan is entry",
			pass:       testPass(models.PassStatusActive, nil, now.Add(-time.Hour), now.Add(time.Hour)),
			wantAction: models.ScanActionEntry,
		},
		{
			name:       "second scan is exit",
			pass:       testPass(models.PassStatusActive, strPtr(models.EntryStatusEntered), now.Add(-time.Hour), now.Add(time.Hour)),
			wantAction: models.ScanActionExit,
		},
		{
			name:    "third scan of spent pass",
			pass:    testPass(models.PassStatusUsed, strPtr(models.EntryStatusExited), now.Add(-time.Hour), now.Add(time.Hour)),
			wantErr: ErrPassAlreadyUsed,
		},
		{
			name:    "exited beats status guard",
			pass:    testPass(models.PassStatusExpired, strPtr(models.EntryStatusExited), now.Add(-2*time.Hour), now.Add(-time.Hour)),
			wantErr: ErrPassAlreadyUsed,
		},
		{
			name:    "cancelled pass",
			pass:    testPass(models.PassStatusCancelled, nil, now.Add(-time.Hour), now.Add(time.Hour)),
			wantErr: ErrPassCancelled,
		},
		{
			name:    "expired status",
			pass:    testPass(models.PassStatusExpired, nil, now.Add(-2*time.Hour), now.Add(-time.Hour)),
			wantErr: ErrPassExpired,
		},
		{
			name:    "overdue active pass",
			pass:    testPass(models.PassStatusActive, nil, now.Add(-2*time.Hour), now.Add(-time.Minute)),
			wantErr: ErrPassExpired,
		},
		{
			name:    "not yet valid",
			pass:    testPass(models.PassStatusActive, nil, now.Add(time.Hour), now.Add(2*time.Hour)),
			wantErr: ErrPassNotYetValid,
		},
		{
			name:    "deleted status",
			pass:    testPass(models.PassStatusDeleted, nil, now.Add(-time.Hour), now.Add(time.Hour)),
			wantErr: ErrPassNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := NextScanAction(tt.pass, now)
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if action != tt.wantAction {
				t.Errorf("action = %q, want %q", action, tt.wantAction)
			}
		})
	}
}

func TestScanCycleIsOneWay(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	pass := testPass(models.PassStatusActive, nil, now.Add(-time.Hour), now.Add(time.Hour))

	action, err := NextScanAction(pass, now)
	if err != nil || action != models.ScanActionEntry {
		t.Fatalf("first scan: got (%q, %v)", action, err)
	}

	// Simulate the entry transition.
	pass.EntryStatus = strPtr(models.EntryStatusEntered)
	action, err = NextScanAction(pass, now)
	if err != nil || action != models.ScanActionExit {
		t.Fatalf("second scan: got (%q, %v)", action, err)
	}

	// Simulate the exit transition: entry_status=exited and status=used.
	pass.EntryStatus = strPtr(models.EntryStatusExited)
	pass.Status = models.PassStatusUsed
	if _, err = NextScanAction(pass, now); err != ErrPassAlreadyUsed {
		t.Fatalf("third scan: err = %v, want ErrPassAlreadyUsed", err)
	}
}
