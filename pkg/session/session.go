// Package session sequences one identification submission through
// admission, dispatch and parsing, and tracks the per-mode result state
// the presentation layer renders.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/menta2k/image-identifier/pkg/admission"
	"github.com/menta2k/image-identifier/pkg/dispatch"
	"github.com/menta2k/image-identifier/pkg/parse"
	"github.com/menta2k/image-identifier/pkg/types"
)

// Status is the lifecycle state of one mode's session.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

var (
	// ErrSubmissionInFlight is returned when a mode already has a
	// submission running. Submissions are never queued.
	ErrSubmissionInFlight = errors.New("a submission is already in progress for this mode")

	// ErrIdentityUnresolved is returned when the parsed record lacks its
	// minimal-identity fields and is therefore discarded.
	ErrIdentityUnresolved = errors.New("could not identify")

	// ErrInvalidMode is returned for an unknown mode string.
	ErrInvalidMode = errors.New("invalid mode")
)

// placeholders are the per-mode preview images shown when no upload is
// being displayed.
var placeholders = map[types.Mode]string{
	types.ModePlant:  "/images/default-plant.jpg",
	types.ModeAnimal: "/images/default-animal.jpg",
	types.ModeSkin:   "/images/default-skin.jpg",
}

// Snapshot is the observable {status, record, preview} tuple for one mode.
// At most one of the record pointers is non-nil, matching the mode.
type Snapshot struct {
	Mode    types.Mode          `json:"mode"`
	Status  Status              `json:"status"`
	Plant   *types.PlantRecord  `json:"plant,omitempty"`
	Animal  *types.AnimalRecord `json:"animal,omitempty"`
	Skin    *types.SkinRecord   `json:"skin,omitempty"`
	Preview string              `json:"preview"`
	Failure string              `json:"failure,omitempty"`
}

type modeState struct {
	status     Status
	submission uuid.UUID // ID of the in-flight submission, if any
	plant      *types.PlantRecord
	animal     *types.AnimalRecord
	skin       *types.SkinRecord
	preview    string
	failure    string
}

// Session orchestrates submissions across the three modes. All state is
// private and guarded; the at-most-one-in-flight-per-mode rule is
// enforced here rather than assumed of callers.
type Session struct {
	admitter   *admission.Pipeline
	dispatcher *dispatch.Dispatcher

	mu    sync.Mutex
	modes map[types.Mode]*modeState
}

// New creates a Session wired to the given admission pipeline and
// dispatcher.
func New(admitter *admission.Pipeline, dispatcher *dispatch.Dispatcher) *Session {
	s := &Session{
		admitter:   admitter,
		dispatcher: dispatcher,
		modes:      make(map[types.Mode]*modeState),
	}
	for _, m := range []types.Mode{types.ModePlant, types.ModeAnimal, types.ModeSkin} {
		s.modes[m] = &modeState{status: StatusIdle, preview: placeholders[m]}
	}
	return s
}

// Snapshot returns the current observable state for a mode.
func (s *Session) Snapshot(mode types.Mode) (Snapshot, error) {
	if !mode.Valid() {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(mode), nil
}

// Reset returns a mode to Idle, clearing its record and restoring the
// placeholder preview. This is the mode-change transition: any submission
// still in flight for the mode is orphaned and its result will be
// discarded on arrival.
func (s *Session) Reset(mode types.Mode) (Snapshot, error) {
	if !mode.Valid() {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.modes[mode]
	st.status = StatusIdle
	st.submission = uuid.Nil
	st.plant, st.animal, st.skin = nil, nil, nil
	st.preview = placeholders[mode]
	st.failure = ""
	return s.snapshotLocked(mode), nil
}

// Submit runs one upload through the full chain for a mode:
// admit -> identify -> parse -> identity check. The chain is strictly
// sequential; the returned snapshot reflects the final state. A second
// Submit while one is in flight fails with ErrSubmissionInFlight.
func (s *Session) Submit(ctx context.Context, mode types.Mode, upload types.Upload) (Snapshot, error) {
	if !mode.Valid() {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	id, err := s.begin(mode)
	if err != nil {
		return Snapshot{}, err
	}

	result := s.admitter.Admit(ctx, upload, mode)
	if !result.Accepted {
		return s.finishFailure(mode, id, result.Reason)
	}

	text, err := s.dispatcher.Identify(ctx, mode, result.Encoded)
	if err != nil {
		return s.finishFailure(mode, id, err)
	}

	snap, err := s.finishParse(mode, id, text, result.Encoded)
	if err != nil {
		return snap, err
	}
	return snap, nil
}

// begin transitions a mode to Submitting, rejecting concurrent
// submissions, and stamps the submission with an ID so a stale result can
// be recognized after a Reset.
func (s *Session) begin(mode types.Mode) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.modes[mode]
	if st.status == StatusSubmitting {
		return uuid.Nil, ErrSubmissionInFlight
	}

	id := uuid.New()
	st.status = StatusSubmitting
	st.submission = id
	st.plant, st.animal, st.skin = nil, nil, nil
	st.failure = ""
	return id, nil
}

func (s *Session) finishParse(mode types.Mode, id uuid.UUID, text string, encoded types.EncodedImage) (Snapshot, error) {
	var (
		plant  *types.PlantRecord
		animal *types.AnimalRecord
		skin   *types.SkinRecord
		perr   error
		ok     bool
	)

	switch mode {
	case types.ModePlant:
		var rec types.PlantRecord
		rec, perr = parse.ParsePlant(text)
		plant, ok = &rec, rec.Identified()
	case types.ModeAnimal:
		var rec types.AnimalRecord
		rec, perr = parse.ParseAnimal(text)
		animal, ok = &rec, rec.Identified()
	case types.ModeSkin:
		var rec types.SkinRecord
		rec, perr = parse.ParseSkin(text)
		skin, ok = &rec, rec.Identified()
	}

	if perr != nil {
		return s.finishFailure(mode, id, perr)
	}
	if !ok {
		// The parser degraded gracefully but the record has no identity;
		// the full reply stays in the log, not in the user-visible message.
		log.Printf("session.Submit: %s record failed identity check, reply was: %q", mode, text)
		return s.finishFailure(mode, id, ErrIdentityUnresolved)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.modes[mode]
	if st.submission != id {
		// The mode was reset while this submission was in flight.
		log.Printf("session.Submit: discarding stale %s result for submission %s", mode, id)
		return s.snapshotLocked(mode), nil
	}

	st.status = StatusSuccess
	st.submission = uuid.Nil
	st.plant, st.animal, st.skin = plant, animal, skin
	st.preview = encoded.DataURI
	st.failure = ""
	return s.snapshotLocked(mode), nil
}

func (s *Session) finishFailure(mode types.Mode, id uuid.UUID, cause error) (Snapshot, error) {
	log.Printf("session.Submit: %s submission failed: %v", mode, cause)

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.modes[mode]
	if st.submission != id {
		log.Printf("session.Submit: discarding stale %s failure for submission %s", mode, id)
		return s.snapshotLocked(mode), nil
	}

	st.status = StatusFailed
	st.submission = uuid.Nil
	st.plant, st.animal, st.skin = nil, nil, nil
	st.preview = placeholders[mode]
	st.failure = cause.Error()
	return s.snapshotLocked(mode), cause
}

func (s *Session) snapshotLocked(mode types.Mode) Snapshot {
	st := s.modes[mode]
	return Snapshot{
		Mode:    mode,
		Status:  st.status,
		Plant:   st.plant,
		Animal:  st.animal,
		Skin:    st.skin,
		Preview: st.preview,
		Failure: st.failure,
	}
}
