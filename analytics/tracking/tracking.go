// SPDX-License-Identifier: ice License 1.0

package tracking

import (
	"context"

	"github.com/pkg/errors"

	appcfg "github.com/ice-blockchain/screens/config"
	"github.com/ice-blockchain/screens/log"
	"github.com/ice-blockchain/screens/time"
)

func New(applicationYAMLKey string) Client {
	var cfg config
	appcfg.MustLoadFromKey(applicationYAMLKey, &cfg)

	if cfg.Tracking.Endpoint == "" {
		cfg.Tracking.Endpoint = appcfg.EnvOverride(applicationYAMLKey, "ANALYTICS_TRACKING_ENDPOINT")
	}

	return NewClient(NewStore(time.Now).WithDefaults(&cfg.Tracking.Defaults), newHTTPTransport(cfg.Tracking.RequestTimeout), cfg.Tracking.Endpoint)
}

// NewClient builds a Client around an explicitly owned store and transport.
// Events are sent to defaultEndpoint unless the configuration has an endpoint of its own.
func NewClient(store *Store, transport Transport, defaultEndpoint string) Client {
	if defaultEndpoint == "" {
		defaultEndpoint = DefaultEndpoint
	}
	if store == nil {
		store = NewStore(time.Now)
	}

	return &tracking{
		store:           store,
		transport:       transport,
		metrics:         newMetrics(),
		defaultEndpoint: defaultEndpoint,
	}
}

func (t *tracking) Initialize(ctx context.Context, cfg *Configuration, initialScreen string, attrs Attributes) (*Delivery, error) {
	if err := t.store.Initialize(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to initialize configuration")
	}
	if initialScreen == "" {
		return resolvedDelivery(true), nil
	}

	return t.ScreenView(ctx, initialScreen, attrs, nil)
}

func (t *tracking) UpdateConfiguration(patch Attributes) error {
	return errors.Wrap(t.store.Update(patch), "failed to update configuration")
}

func (t *tracking) Configuration() (*Configuration, error) {
	cfg, err := t.store.Configuration()

	return cfg, errors.Wrap(err, "failed to get configuration")
}

func (t *tracking) CurrentScreen() *ScreenState {
	return t.store.Screen()
}

func (t *tracking) ScreenView(ctx context.Context, path string, attrs, override Attributes) (*Delivery, error) {
	merged, extras, err := t.prepare(ctx, ScreenViewEvent, withPath(path, attrs), override)
	if err != nil {
		return nil, err
	}
	left, dwell, hadPrevious := t.store.enterScreen(orNotSet(merged.Path))
	var computed Attributes
	if hadPrevious {
		computed = Attributes{LeaveFromPathField: left, LeaveFromDurationField: dwell.Milliseconds()}
		t.metrics.recordDwell(ctx, dwell)
	}

	return t.dispatch(ctx, ScreenViewEvent, merged, extras, computed), nil
}

func (t *tracking) ScreenLeave(ctx context.Context, attrs, override Attributes) (*Delivery, error) {
	merged, extras, err := t.prepare(ctx, ScreenLeaveEvent, attrs, override)
	if err != nil {
		return nil, err
	}
	left, dwell, ok := t.store.leaveScreen()
	if !ok {
		log.Debug("analytics/tracking screen leave ignored, there is no current screen")

		return resolvedDelivery(false), nil
	}
	if _, explicit := attrs[PathAttribute].(string); !explicit {
		merged.Path = left
	}
	t.metrics.recordDwell(ctx, dwell)

	return t.dispatch(ctx, ScreenLeaveEvent, merged, extras, Attributes{ScreenDurationField: dwell.Milliseconds()}), nil
}

func (t *tracking) CustomEvent(ctx context.Context, eventType string, attrs, override Attributes) (*Delivery, error) {
	if eventType == "" {
		return nil, ErrMissingEventType
	}
	merged, extras, err := t.prepare(ctx, eventType, attrs, override)
	if err != nil {
		return nil, err
	}

	return t.dispatch(ctx, eventType, merged, extras, nil), nil
}

func (t *tracking) SessionExit(ctx context.Context, path string, attrs, override Attributes) (*Delivery, error) {
	return t.CustomEvent(ctx, SessionExitEvent, withPath(path, attrs), override)
}

// prepare resolves and validates the configuration of an event, without touching any state.
func (t *tracking) prepare(ctx context.Context, eventType string, attrs, override Attributes) (*Configuration, Attributes, error) {
	stored, err := t.store.Configuration()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "can't send `%v`", eventType)
	}
	merged, extras := merge(stored, override, attrs)
	if err = merged.validate(); err != nil {
		t.metrics.recordRejection(ctx, eventType)

		return nil, nil, errors.Wrapf(err, "can't send `%v`, invalid configuration", eventType)
	}

	return merged, extras, nil
}

func (t *tracking) dispatch(ctx context.Context, eventType string, cfg *Configuration, extras, computed Attributes) *Delivery {
	url := cfg.Endpoint
	if url == "" {
		url = t.defaultEndpoint
	}
	body := buildPayload(eventType, cfg, extras, computed)
	delivery := newDelivery()
	ctx = context.WithoutCancel(ctx)
	go func() {
		delivered := false
		defer func() {
			if r := recover(); r != nil {
				log.Error(errors.Errorf("analytics/tracking transport panicked: %v", r), "url", url)
			}
			t.metrics.recordDispatch(ctx, eventType, delivered)
			delivery.resolve(delivered)
		}()
		delivered = t.transport.Post(ctx, url, body)
	}()

	return delivery
}

// withPath puts path under the path attribute, unless it's empty or attrs already carry one.
func withPath(path string, attrs Attributes) Attributes {
	all := make(Attributes, len(attrs)+1)
	if path != "" {
		all[PathAttribute] = path
	}
	for key, val := range attrs {
		all[key] = val
	}

	return all
}
