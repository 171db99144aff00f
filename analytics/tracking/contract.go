// SPDX-License-Identifier: ice License 1.0

package tracking

import (
	"context"
	"sync"
	stdlibtime "time"

	"github.com/imroc/req/v3"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/metric"

	"github.com/ice-blockchain/screens/time"
)

// Public API.

const (
	ScreenViewEvent  = "screen_view"
	ScreenLeaveEvent = "screen_leave"
	SessionExitEvent = "session_exit"
)

// Attribute names, as accepted in Attributes and in the yaml/json representation of a Configuration.
const (
	TenantIDAttribute           = "tid"
	PlatformAttribute           = "platform"
	UniqueIdentifierAttribute   = "uuid"
	OSDetailAttribute           = "os"
	AppDetailAttribute          = "app"
	UserLanguageAttribute       = "language"
	PathAttribute               = "path"
	EndpointAttribute           = "endpoint"
	BypassIPUniquenessAttribute = "bypassIpUniqueness"
)

// Payload fields computed from the screen tracking state.
const (
	LeaveFromPathField     = "leave_from_path"
	LeaveFromDurationField = "leave_from_duration"
	ScreenDurationField    = "screen_duration"
)

const (
	// NotSet is sent for every optional textual payload field that has no value.
	NotSet          = "(not-set)"
	DefaultEndpoint = "https://api.metricalp.com/v1/events"
)

var (
	ErrNotInitialized          = errors.New("tracking is not initialized, call Initialize first")
	ErrMissingTenantID         = errors.New("tid is not set")
	ErrMissingPlatform         = errors.New("platform is not set")
	ErrMissingUniqueIdentifier = errors.New("uuid must be set when bypassIpUniqueness is true")
	ErrMissingEventType        = errors.New("event type is not set")
	ErrInvalidAttribute        = errors.New("not a configuration attribute, or its value has the wrong type")
)

type (
	// Attributes are caller supplied event attributes.
	// The ones named like a Configuration attribute override it for that event only, the rest are sent as they are.
	Attributes = map[string]any
	// Configuration is the context attached to every event.
	Configuration struct {
		TenantID           string `json:"tid,omitempty" yaml:"tid" mapstructure:"tid"`
		Platform           string `json:"platform,omitempty" yaml:"platform" mapstructure:"platform"`
		UniqueIdentifier   string `json:"uuid,omitempty" yaml:"uuid" mapstructure:"uuid"`
		OSDetail           string `json:"os,omitempty" yaml:"os" mapstructure:"os"`
		AppDetail          string `json:"app,omitempty" yaml:"app" mapstructure:"app"`
		UserLanguage       string `json:"language,omitempty" yaml:"language" mapstructure:"language"`
		Path               string `json:"path,omitempty" yaml:"path" mapstructure:"path"`
		Endpoint           string `json:"endpoint,omitempty" yaml:"endpoint" mapstructure:"endpoint"`
		BypassIPUniqueness bool   `json:"bypassIpUniqueness,omitempty" yaml:"bypassIpUniqueness" mapstructure:"bypassIpUniqueness"` //nolint:tagliatelle // Collector naming.
	}
	ScreenState struct {
		EnteredAt *time.Time `json:"enteredAt,omitempty"`
		Path      string     `json:"path,omitempty"`
	}
	// Delivery is the outcome of a single dispatched event, available once the request to the collector finishes.
	Delivery struct {
		done      chan struct{}
		delivered bool
	}
	// Transport sends a JSON body to the collector and reports whether it was accepted. It must never panic on network failures.
	Transport interface {
		Post(ctx context.Context, url string, body any) bool
	}
	// Store holds the shared configuration and the screen tracking state. One per host application.
	Store struct {
		mx        *sync.RWMutex
		cfg       *Configuration
		defaults  *Configuration
		enteredAt *time.Time
		now       time.Clock
		screen    string
	}
	Client interface {
		// Initialize replaces the whole configuration. If initialScreen is not empty, a screen view for it is dispatched right away.
		Initialize(ctx context.Context, cfg *Configuration, initialScreen string, attrs Attributes) (*Delivery, error)
		// UpdateConfiguration overwrites every configuration attribute present in patch, zero values included.
		UpdateConfiguration(patch Attributes) error
		Configuration() (*Configuration, error)
		CurrentScreen() *ScreenState

		// ScreenView makes path the current screen. override applies to this event only, above the stored configuration and below attrs.
		ScreenView(ctx context.Context, path string, attrs, override Attributes) (*Delivery, error)
		ScreenLeave(ctx context.Context, attrs, override Attributes) (*Delivery, error)
		CustomEvent(ctx context.Context, eventType string, attrs, override Attributes) (*Delivery, error)
		// Deprecated: use CustomEvent with SessionExitEvent.
		SessionExit(ctx context.Context, path string, attrs, override Attributes) (*Delivery, error)
	}
)

// Private API.

const (
	requestDeadline = 25 * stdlibtime.Second

	typeField             = "type"
	pathField             = "path"
	collectedViaField     = "metr_collected_via"
	osDetailField         = "metr_os_detail"
	appDetailField        = "metr_app_detail"
	userLanguageField     = "metr_user_language"
	uniqueIdentifierField = "metr_unique_identifier"
	bypassIPField         = "metr_bypass_ip"
	tenantIDField         = "tid"
	mappedFieldsCount     = 9

	meterName = "github.com/ice-blockchain/screens/analytics/tracking"
)

type (
	tracking struct {
		store           *Store
		transport       Transport
		metrics         metricsRecorder
		defaultEndpoint string
	}
	httpTransport struct {
		client *req.Client
	}
	metricsRecorder interface {
		recordDispatch(ctx context.Context, eventType string, delivered bool)
		recordRejection(ctx context.Context, eventType string)
		recordDwell(ctx context.Context, dwell stdlibtime.Duration)
	}
	otelMetrics struct {
		dispatched metric.Int64Counter
		rejected   metric.Int64Counter
		dwell      metric.Int64Histogram
	}
	noopMetrics struct{}
	config      struct {
		Tracking struct {
			Endpoint       string              `yaml:"endpoint" mapstructure:"endpoint"`
			RequestTimeout stdlibtime.Duration `yaml:"requestTimeout" mapstructure:"requestTimeout"`
			Defaults       Configuration       `yaml:"defaults" mapstructure:"defaults"`
		} `yaml:"analytics/tracking" mapstructure:"analytics/tracking"` //nolint:tagliatelle // Nope.
	}
)
