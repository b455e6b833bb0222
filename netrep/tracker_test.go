package netrep

import "testing"

func TestRecordFailureIncrementsAndSaturates(t *testing.T) {
	tr := New()
	const peer = PeerID("peer-1")

	tr.RecordFailure(peer, 1)
	if got := tr.FailCount(peer); got != 1 {
		t.Fatalf("FailCount after one failure = %d, want 1", got)
	}

	for i := 0; i < 300; i++ {
		tr.RecordFailure(peer, 1)
	}
	if got := tr.FailCount(peer); got != 255 {
		t.Fatalf("FailCount should saturate at 255, got %d", got)
	}
}

func TestTempBanEveryThirdFailure(t *testing.T) {
	tr := New()
	const peer = PeerID("peer-1")

	tr.RecordFailure(peer, 1000)
	tr.RecordFailure(peer, 1000)
	if tr.IsTempBanned(peer, 1000) {
		t.Fatal("peer should not be temp-banned before the third failure")
	}

	tr.RecordFailure(peer, 1000)
	if !tr.IsTempBanned(peer, 1000) {
		t.Fatal("peer should be temp-banned on the third failure")
	}
	if tr.IsTempBanned(peer, 1000+tempBanSeconds) {
		t.Fatal("temp ban should have expired after tempBanSeconds")
	}
}

func TestDisconnectAtFiftyFailures(t *testing.T) {
	tr := New()
	const peer = PeerID("peer-1")

	var disconnect bool
	for i := 0; i < disconnectThreshold; i++ {
		disconnect = tr.RecordFailure(peer, 1000)
	}
	if !disconnect {
		t.Fatal("RecordFailure should report disconnect once the threshold is reached")
	}
	if !tr.IsDisconnected(peer) {
		t.Fatal("IsDisconnected should report true once the threshold is reached")
	}
}

func TestWhitelistedPeerExemptFromFailures(t *testing.T) {
	tr := New()
	const peer = PeerID("peer-1")
	tr.Whitelist(peer)

	for i := 0; i < 100; i++ {
		tr.RecordFailure(peer, 1000)
	}
	if got := tr.FailCount(peer); got != 0 {
		t.Fatalf("whitelisted peer FailCount = %d, want 0", got)
	}
}

func TestFailCountResetsAfterInactivity(t *testing.T) {
	tr := New()
	const peer = PeerID("peer-1")

	tr.RecordFailure(peer, 0)
	tr.RecordFailure(peer, 1)
	if got := tr.FailCount(peer); got != 2 {
		t.Fatalf("FailCount before reset = %d, want 2", got)
	}

	tr.RecordFailure(peer, resetAfterSeconds+1)
	if got := tr.FailCount(peer); got != 1 {
		t.Fatalf("FailCount after inactivity reset = %d, want 1 (reset then one new failure)", got)
	}
}

func TestReconnectBackoffScalesWithFailCount(t *testing.T) {
	tr := New()
	const peer = PeerID("peer-1")

	tr.RecordFailure(peer, 1)
	tr.RecordFailure(peer, 1)
	want := int64(2) * backoffUnitSeconds
	if got := tr.ReconnectBackoffSeconds(peer); got != want {
		t.Fatalf("ReconnectBackoffSeconds = %d, want %d", got, want)
	}
}
