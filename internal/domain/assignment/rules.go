package assignment

import "github.com/google/uuid"

// IsLegal decides whether assigning receiver to giver is allowed given the
// recorded history and the assignments already made in the current run.
// A pairing is illegal if the giver would draw themselves, the receiver is
// already claimed this run, or the giver had this receiver in a prior year.
// Pure and stateless; safe to call concurrently.
func IsLegal(giverID, receiverID uuid.UUID, history History, current Matching) bool {
	if giverID == receiverID {
		return false
	}
	if current.ReceiverClaimed(receiverID) {
		return false
	}
	if history.HadReceiver(giverID, receiverID) {
		return false
	}
	return true
}
