package valueobjects

import "testing"

// TestTicketStatus_CanTransitionTo exercises every ordered pair of the
// transition graph.
func TestTicketStatus_CanTransitionTo(t *testing.T) {
	allowed := map[TicketStatus]map[TicketStatus]bool{
		StatusOpen:       {StatusInProgress: true, StatusClosed: true},
		StatusInProgress: {StatusResolved: true},
		StatusResolved:   {StatusClosed: true, StatusInProgress: true},
		StatusClosed:     {StatusOpen: true},
	}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			want := allowed[from][to]
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTicketStatus_CanTransitionTo_InvalidStatus(t *testing.T) {
	if TicketStatus("bogus").CanTransitionTo(StatusOpen) {
		t.Error("CanTransitionTo() from unknown status should be false")
	}
	if StatusOpen.CanTransitionTo(TicketStatus("bogus")) {
		t.Error("CanTransitionTo() to unknown status should be false")
	}
}

func TestTicketStatus_IsValid(t *testing.T) {
	testCases := []struct {
		name   string
		status TicketStatus
		want   bool
	}{
		{"open is valid", StatusOpen, true},
		{"in_progress is valid", StatusInProgress, true},
		{"resolved is valid", StatusResolved, true},
		{"closed is valid", StatusClosed, true},
		{"empty string is invalid", TicketStatus(""), false},
		{"unknown status is invalid", TicketStatus("pending"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.status.IsValid(); got != tc.want {
				t.Errorf("IsValid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewTicketStatus(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    TicketStatus
		wantErr bool
	}{
		{"parses open", "open", StatusOpen, false},
		{"parses in_progress", "in_progress", StatusInProgress, false},
		{"parses resolved", "resolved", StatusResolved, false},
		{"parses closed", "closed", StatusClosed, false},
		{"rejects empty", "", "", true},
		{"rejects unknown", "archived", "", true},
		{"rejects mixed case", "Open", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewTicketStatus(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("NewTicketStatus(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("NewTicketStatus(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestTicketStatus_Predicates(t *testing.T) {
	if !StatusOpen.IsOpen() || StatusOpen.IsClosed() {
		t.Error("StatusOpen predicates are wrong")
	}
	if !StatusInProgress.IsInProgress() {
		t.Error("StatusInProgress.IsInProgress() should be true")
	}
	if !StatusResolved.IsResolved() {
		t.Error("StatusResolved.IsResolved() should be true")
	}
	if !StatusClosed.IsClosed() {
		t.Error("StatusClosed.IsClosed() should be true")
	}
}
