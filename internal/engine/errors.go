package engine

// refusal is an internal sentinel carrying the reason string the event loop
// sends back to the requester as RequestRefused (spec.md §4.3.1). It never
// crosses a package boundary as a Go error value returned to a caller other
// than the guard chain itself — adapted from the teacher's GameError
// (cmd/server/errors.go), narrowed to the single field the wire protocol
// actually uses.
type refusal struct {
	Reason string
}

func (r *refusal) Error() string { return r.Reason }

func refuse(reason string) error { return &refusal{Reason: reason} }

func refusalReason(err error) (string, bool) {
	r, ok := err.(*refusal)
	if !ok {
		return "", false
	}
	return r.Reason, true
}
