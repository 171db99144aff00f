// SPDX-License-Identifier: ice License 1.0

package tracking

import (
	"sync"
	stdlibtime "time"

	"dario.cat/mergo"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/ice-blockchain/screens/terror"
	"github.com/ice-blockchain/screens/time"
)

func NewStore(clock time.Clock) *Store {
	if clock == nil {
		clock = time.Now
	}

	return &Store{mx: new(sync.RWMutex), now: clock}
}

// WithDefaults sets the values Initialize falls back to for the fields it leaves empty.
func (s *Store) WithDefaults(defaults *Configuration) *Store {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.defaults = nil
	if defaults != nil {
		cp := *defaults
		s.defaults = &cp
	}

	return s
}

// Initialize replaces the configuration, nothing from the previous one is kept. A nil cfg initializes an empty configuration.
func (s *Store) Initialize(cfg *Configuration) error {
	replacement := new(Configuration)
	if cfg != nil {
		*replacement = *cfg
	}
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.defaults != nil {
		if err := mergo.Merge(replacement, s.defaults); err != nil {
			return errors.Wrapf(err, "failed to apply defaults %#v", s.defaults)
		}
	}
	s.cfg = replacement

	return nil
}

// Update overwrites every attribute present in patch, zero values included. The rest is preserved.
// Nothing is changed if any of them isn't a configuration attribute of the right type.
func (s *Store) Update(patch Attributes) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.cfg == nil {
		return ErrNotInitialized
	}
	updated := *s.cfg
	var mErr *multierror.Error
	for key, val := range patch {
		if !updated.apply(key, val) {
			mErr = multierror.Append(mErr, terror.New(ErrInvalidAttribute, map[string]any{"attribute": key, "value": val}))
		}
	}
	if err := mErr.ErrorOrNil(); err != nil {
		return errors.Wrapf(err, "failed to update configuration with %#v", patch)
	}
	s.cfg = &updated

	return nil
}

func (s *Store) Configuration() (*Configuration, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	if s.cfg == nil {
		return nil, ErrNotInitialized
	}
	cfg := *s.cfg

	return &cfg, nil
}

func (s *Store) CurrentScreen() string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return s.screen
}

func (s *Store) SetCurrentScreen(path string) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.screen = path
}

func (s *Store) MarkScreenEntryNow() {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.enteredAt = s.now()
}

func (s *Store) Screen() *ScreenState {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return &ScreenState{Path: s.screen, EnteredAt: s.enteredAt}
}

// enterScreen makes path the current screen and reports the one it replaced, if any, with the time spent on it.
func (s *Store) enterScreen(path string) (left string, dwell stdlibtime.Duration, hadPrevious bool) {
	s.mx.Lock()
	defer s.mx.Unlock()

	now := s.now()
	if s.screen != "" {
		left, dwell, hadPrevious = s.screen, now.Sub(s.enteredAt), true
	}
	s.screen, s.enteredAt = path, now

	return left, dwell, hadPrevious
}

// leaveScreen clears the current screen, reporting which one it was and the time spent on it.
func (s *Store) leaveScreen() (left string, dwell stdlibtime.Duration, ok bool) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.screen == "" {
		return "", 0, false
	}
	left, dwell = s.screen, s.now().Sub(s.enteredAt)
	s.screen, s.enteredAt = "", nil

	return left, dwell, true
}
